package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(_ context.Context, args []string) error {
	return f.record("register", args)
}
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Logout(_ context.Context, args []string) error {
	f.loggedIn = false
	return f.record("logout", args)
}
func (f *fakeExec) Me(_ context.Context, args []string) error     { return f.record("me", args) }
func (f *fakeExec) List(_ context.Context, args []string) error   { return f.record("list", args) }
func (f *fakeExec) Show(_ context.Context, args []string) error   { return f.record("show", args) }
func (f *fakeExec) Add(_ context.Context, args []string) error    { return f.record("add", args) }
func (f *fakeExec) Edit(_ context.Context, args []string) error   { return f.record("edit", args) }
func (f *fakeExec) Delete(_ context.Context, args []string) error { return f.record("delete", args) }
func (f *fakeExec) Search(_ context.Context, args []string) error { return f.record("search", args) }

func silenceREPL(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silenceREPL(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add",
		"l",
		"show 123",
		"edit 5",
		"search milk and eggs",
		"rm 7",
		"me",
		"",
		"logout",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{"login", "add", "list", "show", "edit", "search", "delete", "me", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := exec.args["show"]; len(got) != 1 || got[0] != "123" {
		t.Fatalf("show args = %v", got)
	}
	if got := strings.Join(exec.args["search"], " "); got != "milk and eggs" {
		t.Fatalf("search args = %q", got)
	}
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	printed := silenceREPL(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\n")))

	var helps []string
	for _, p := range *printed {
		if strings.HasPrefix(p, "Available commands") {
			helps = append(helps, p)
		}
	}
	if len(helps) != 2 {
		t.Fatalf("help printed %d times", len(helps))
	}
	if strings.Contains(helps[0], "search") || !strings.Contains(helps[1], "search") {
		t.Fatalf("unexpected help texts: %v", helps)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	printed := silenceREPL(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("foobar\nquit\nlist\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	joined := strings.Join(*printed, "\n")
	if !strings.Contains(joined, "Unknown command: foobar") || !strings.Contains(joined, "Bye!") {
		t.Fatalf("output = %q", joined)
	}
}
