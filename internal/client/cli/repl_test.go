package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return f.failWith
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) SetToken(ctx context.Context, raw string) error {
	f.calls = append(f.calls, "token")
	f.arg = raw
	return nil
}
func (f *fakeExec) Users(ctx context.Context, filter string) error {
	f.calls = append(f.calls, "users")
	f.arg = filter
	return nil
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrints(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"status",
		"users PartitionKey eq 'admin'",
		"token abc.def.ghi",
		"logout",
		"foobar",
		"exit",
		"status",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{"login", "status", "users", "token", "logout"}, exec.calls)
	assert.Equal(t, "abc.def.ghi", exec.arg)
	assert.Contains(t, *out, "Available commands: login, token <jwt>, status, exit")
	assert.Contains(t, *out, "Available commands: status, users [filter], token <jwt>, logout, exit")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "rentalauth status> ")
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("token\ntoken a b")))

	assert.Empty(t, exec.calls)
	assert.Equal(t, 2, strings.Count(strings.Join(*out, "\n"), "Usage: token <jwt>"))
}

func TestRunREPL_UsersFilterJoined(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewReader(strings.NewReader("users Email  eq 'a@b.c'\nquit\n")))

	assert.Equal(t, "Email eq 'a@b.c'", exec.arg)
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{failWith: errors.New("terminal gone")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\nexit\n")))

	assert.Contains(t, *out, "error: terminal gone")
}
