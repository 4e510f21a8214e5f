package admin

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/investkeeper/internal/flagx"
)

func (a *App) register(ctx context.Context, args []string) error {
	var userName string

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&userName, "u", "", "user name")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u"})); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if userName == "" {
		var err error
		userName, err = getSimpleText(a.in, "Enter user name", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	user, err := a.users.Register(ctx, userName, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered user %q with id %d\n", user.UserName, user.ID)
	return nil
}
