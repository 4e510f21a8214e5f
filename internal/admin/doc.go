// Package admin implements offline maintenance commands that operate on the
// investkeeper document store directly, without a running server.
//
// Commands:
//   - register -u <name>: create a user; the password is read from the
//     terminal without echo.
//   - users: list registered users (id and name).
//   - check: validate the stored document and print a summary. Any
//     violation makes the command fail.
package admin
