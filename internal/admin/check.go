package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

// Violation describes one broken document invariant.
type Violation struct {
	Collection string
	ID         int
	Problem    string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s[%d]: %s", v.Collection, v.ID, v.Problem)
}

// Check validates doc: ids are positive and unique per collection,
// usernames are unique, every investment belongs to an existing user and
// recorded sequences are not behind the highest id.
func Check(doc *models.Document) []Violation {
	var out []Violation

	userIDs := make(map[int]struct{}, len(doc.Users))
	names := make(map[string]int, len(doc.Users))
	maxUser := 0
	for _, u := range doc.Users {
		if u.ID <= 0 {
			out = append(out, Violation{models.UsersCollection, u.ID, "id must be positive"})
		}
		if _, dup := userIDs[u.ID]; dup {
			out = append(out, Violation{models.UsersCollection, u.ID, "duplicate id"})
		}
		userIDs[u.ID] = struct{}{}
		if first, dup := names[u.UserName]; dup {
			out = append(out, Violation{models.UsersCollection, u.ID,
				fmt.Sprintf("username %q already used by id %d", u.UserName, first)})
		} else {
			names[u.UserName] = u.ID
		}
		if u.PasswordHash == "" {
			out = append(out, Violation{models.UsersCollection, u.ID, "missing password hash"})
		}
		maxUser = max(maxUser, u.ID)
	}

	invIDs := make(map[int]struct{}, len(doc.Investments))
	maxInv := 0
	for _, inv := range doc.Investments {
		if inv.ID <= 0 {
			out = append(out, Violation{models.InvestmentsCollection, inv.ID, "id must be positive"})
		}
		if _, dup := invIDs[inv.ID]; dup {
			out = append(out, Violation{models.InvestmentsCollection, inv.ID, "duplicate id"})
		}
		invIDs[inv.ID] = struct{}{}
		if _, ok := userIDs[inv.OwnerID]; !ok {
			out = append(out, Violation{models.InvestmentsCollection, inv.ID,
				fmt.Sprintf("owner %d does not exist", inv.OwnerID)})
		}
		maxInv = max(maxInv, inv.ID)
	}

	for name, highest := range map[string]int{
		models.UsersCollection:       maxUser,
		models.InvestmentsCollection: maxInv,
	} {
		if last, ok := doc.Sequences[name]; ok && last < highest {
			out = append(out, Violation{name, highest,
				fmt.Sprintf("sequence %d is behind highest id", last)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Collection != out[j].Collection {
			return out[i].Collection < out[j].Collection
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (a *App) check(ctx context.Context) error {
	var violations []Violation
	var users, investments int

	err := a.store.View(ctx, func(doc *models.Document) error {
		users, investments = len(doc.Users), len(doc.Investments)
		violations = Check(doc)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "users: %d, investments: %d\n", users, investments)
	for _, v := range violations {
		fmt.Fprintln(a.out, v.String())
	}
	if len(violations) > 0 {
		return fmt.Errorf("%w: %d violation(s)", ErrCheckFailed, len(violations))
	}

	fmt.Fprintln(a.out, "OK")
	return nil
}
