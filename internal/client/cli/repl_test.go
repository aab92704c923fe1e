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
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) VerifyEmail(ctx context.Context) error   { return f.record("verify") }
func (f *fakeExec) ResetPassword(ctx context.Context) error { return f.record("resetpw") }
func (f *fakeExec) Topics(ctx context.Context) error        { return f.record("topics") }
func (f *fakeExec) AddTopic(ctx context.Context) error      { return f.record("addtopic") }
func (f *fakeExec) RenameTopic(ctx context.Context) error   { return f.record("renametopic") }
func (f *fakeExec) DeleteTopic(ctx context.Context) error   { return f.record("deltopic") }
func (f *fakeExec) Presentations(ctx context.Context) error { return f.record("pres") }
func (f *fakeExec) AddPresentation(ctx context.Context) error {
	return f.record("addpres")
}
func (f *fakeExec) DeletePresentation(ctx context.Context) error {
	return f.record("delpres")
}
func (f *fakeExec) Upload(ctx context.Context) error   { return f.record("upload") }
func (f *fakeExec) Analyze(ctx context.Context) error  { return f.record("analyze") }
func (f *fakeExec) Feedback(ctx context.Context) error { return f.record("feedback") }
func (f *fakeExec) Sidebar(ctx context.Context) error  { return f.record("sidebar") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"topics",
		"addtopic",
		"pres",
		"addpres",
		"upload",
		"analyze",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "topics", "addtopic", "pres", "addpres", "upload", "analyze"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

}

func TestRunREPL_Aliases(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("t\np\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 2 || exec.calls[0] != "topics" || exec.calls[1] != "pres" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("whatisthis\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
