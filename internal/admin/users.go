package admin

import (
	"context"
	"fmt"
)

func (a *App) listUsers(ctx context.Context) error {
	users, err := a.users.List(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Fprintf(a.out, "%d\t%s\n", u.ID, u.UserName)
	}
	fmt.Fprintf(a.out, "%d user(s)\n", len(users))
	return nil
}
