package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/investkeeper/internal/server/services"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

// ErrUsage is returned for an unknown command or bad command flags.
var ErrUsage = errors.New("usage: admin [server flags] <register -u name | users | check>")

// ErrCheckFailed is returned by the check command when the document
// violates one of its invariants.
var ErrCheckFailed = errors.New("document check failed")

type App struct {
	store *store.Store
	users *services.UserService
	in    *bufio.Reader
	out   io.Writer
}

func NewApp(st *store.Store, us *services.UserService, in io.Reader, out io.Writer) *App {
	return &App{store: st, users: us, in: bufio.NewReader(in), out: out}
}

var commands = map[string]struct{}{
	"register": {},
	"users":    {},
	"check":    {},
	"help":     {},
}

// Run executes the first command word found in args. Arguments before it
// are taken as server configuration flags and skipped.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := splitCommand(args)

	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "users":
		return a.listUsers(ctx)
	case "check":
		return a.check(ctx)
	case "help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	default:
		return ErrUsage
	}
}

func splitCommand(args []string) (string, []string) {
	for i, arg := range args {
		if _, ok := commands[arg]; ok {
			return arg, args[i+1:]
		}
	}
	return "", nil
}
