package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Topics(ctx context.Context) error
	AddTopic(ctx context.Context) error
	RenameTopic(ctx context.Context) error
	DeleteTopic(ctx context.Context) error
	Presentations(ctx context.Context) error
	AddPresentation(ctx context.Context) error
	DeletePresentation(ctx context.Context) error
	Upload(ctx context.Context) error
	Analyze(ctx context.Context) error
	Feedback(ctx context.Context) error
	Sidebar(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Orator CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - verify         — confirm an email address
//	  - resetpw        — reset a forgotten password
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - topics         — list topics
//	  - addtopic       — create a topic
//	  - renametopic    — rename a topic
//	  - deltopic       — delete a topic and its presentations
//	  - pres           — list presentations of a topic
//	  - addpres        — create a presentation
//	  - delpres        — delete a presentation
//	  - upload         — attach a practice video
//	  - analyze        — run video analysis and wait for results
//	  - feedback       — print stored feedback for a job
//	  - sidebar        — toggle the sidebar preference
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("orator> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: topics, addtopic, renametopic, deltopic, pres, addpres, delpres, upload, analyze, feedback, sidebar, logout, exit")
			} else {
				printlnFn("Available commands: register, login, verify, resetpw, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.VerifyEmail(ctx)

		case "resetpw":
			_ = a.ResetPassword(ctx)

		case "t", "topics":
			_ = a.Topics(ctx)

		case "addtopic":
			_ = a.AddTopic(ctx)

		case "renametopic":
			_ = a.RenameTopic(ctx)

		case "deltopic":
			_ = a.DeleteTopic(ctx)

		case "p", "pres":
			_ = a.Presentations(ctx)

		case "addpres":
			_ = a.AddPresentation(ctx)

		case "delpres":
			_ = a.DeletePresentation(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "analyze":
			_ = a.Analyze(ctx)

		case "feedback":
			_ = a.Feedback(ctx)

		case "sidebar":
			_ = a.Sidebar(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
