package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	SetToken(ctx context.Context, raw string) error
	Users(ctx context.Context, filter string) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. The prompt carries statusFn's output. Command
// errors are printed and the loop goes on.
//
//	Not logged in: help, login, token <jwt>, status, exit
//	Logged in:     help, status, users [filter], token <jwt>, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rentalauth %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: status, users [filter], token <jwt>, logout, exit")
			} else {
				printlnFn("Available commands: login, token <jwt>, status, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "status", "whoami":
			err = a.Status(ctx)

		case "token":
			if len(args) != 1 {
				printlnFn("Usage: token <jwt>")
				continue
			}
			err = a.SetToken(ctx, args[0])

		case "users":
			err = a.Users(ctx, strings.Join(args, " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
