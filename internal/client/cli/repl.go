package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error

	Complaints(ctx context.Context, args []string) error
	Complain(ctx context.Context) error
	SetStatus(ctx context.Context, args []string) error
	Solve(ctx context.Context, args []string) error

	Notices(ctx context.Context) error
	PostNotice(ctx context.Context) error
	DeleteNotice(ctx context.Context, args []string) error

	Visitors(ctx context.Context) error
	LogVisitor(ctx context.Context) error
	ExitVisitor(ctx context.Context, args []string) error

	Payments(ctx context.Context) error
	Pay(ctx context.Context, args []string) error

	Notifications(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
}

var (
	errNotLoggedIn     = errors.New("please log in first")
	errAdminOnly       = errors.New("only administrators can do that")
	errAlreadyLoggedIn = errors.New("already logged in, log out first")
)

// usageError reports a malformed command line.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

const (
	helpLoggedOut = "Available commands: register, login, help, quit"
	helpResident  = "Available commands: complaints [status], complain, notices, visitors, payments, pay <id>, " +
		"notifications, read <id|all>, stats, avatar <file>, refresh, logout, quit"
	helpAdmin = "Available commands: complaints [status], complain, status <id> <OPEN|IN_PROGRESS|RESOLVED>, solve <id>, " +
		"notices, notice, unnotice <id>, visitors, visitor, exit-visitor <id>, payments, pay <id>, " +
		"notifications, read <id|all>, stats, avatar <file>, refresh, logout, quit"
)

// runREPL reads commands line by line from r and dispatches them to a until
// EOF or "exit"/"quit". Command errors are printed and the loop continues.
//
// The prompt shows the current status (from statusFn). Commands other than
// help, register, login and quit require a signed-in user, while register
// and login require that nobody is. status, solve, notice, unnotice, visitor
// and exit-visitor also require an administrator.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("civichub %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

// dispatch runs one command after checking that the caller may use it.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		switch {
		case a.isAdmin():
			printlnFn(helpAdmin)
		case a.isLoggedIn():
			printlnFn(helpResident)
		default:
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register", "login":
		if a.isLoggedIn() {
			return errAlreadyLoggedIn
		}
		if cmd == "register" {
			return a.Register(ctx)
		}
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		if isKnown(cmd) {
			return errNotLoggedIn
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if adminOnly[cmd] && !a.isAdmin() {
		return errAdminOnly
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "complaints":
		return a.Complaints(ctx, args)
	case "complain":
		return a.Complain(ctx)
	case "status":
		return a.SetStatus(ctx, args)
	case "solve":
		return a.Solve(ctx, args)
	case "notices":
		return a.Notices(ctx)
	case "notice":
		return a.PostNotice(ctx)
	case "unnotice":
		return a.DeleteNotice(ctx, args)
	case "visitors":
		return a.Visitors(ctx)
	case "visitor":
		return a.LogVisitor(ctx)
	case "exit-visitor":
		return a.ExitVisitor(ctx, args)
	case "payments":
		return a.Payments(ctx)
	case "pay":
		return a.Pay(ctx, args)
	case "notifications":
		return a.Notifications(ctx)
	case "read":
		return a.Read(ctx, args)
	case "stats":
		return a.Stats(ctx)
	case "avatar":
		return a.Avatar(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

var adminOnly = map[string]bool{
	"status":       true,
	"solve":        true,
	"notice":       true,
	"unnotice":     true,
	"visitor":      true,
	"exit-visitor": true,
}

func isKnown(cmd string) bool {
	switch cmd {
	case "logout", "refresh", "complaints", "complain", "notices", "visitors", "payments", "pay",
		"notifications", "read", "stats", "avatar":
		return true
	}
	return adminOnly[cmd]
}

// oneArg returns the single argument a command expects.
func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", usageError(usage)
	}
	return args[0], nil
}
