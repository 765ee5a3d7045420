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
	Logout(ctx context.Context) error
	AddFreight(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, id, docType string) error
	History(ctx context.Context, id string) error
	AddProfile(ctx context.Context) error
	Profiles(ctx context.Context) error
	AddField(ctx context.Context) error
	Fields(ctx context.Context) error
	RemoveField(ctx context.Context, id string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
	Reset(ctx context.Context) error
}

var usage = map[string]string{
	"show":     "Usage: show <id>",
	"edit":     "Usage: edit <id>",
	"delete":   "Usage: delete <id>",
	"generate": "Usage: generate <id> bilty|invoice",
	"history":  "Usage: history <id>",
	"rmfield":  "Usage: rmfield <id>",
	"export":   "Usage: export <file>",
	"import":   "Usage: import <file>",
}

// runREPL reads commands line by line and dispatches them to a. The first
// token is the command, the rest are its arguments. The loop ends on EOF or
// on "exit"/"quit".
//
//	Not logged in:  help, register, login, exit
//	Logged in:      help, addfreight, list, show, edit, delete, generate,
//	                history, addprofile, profiles, addfield, fields, rmfield,
//	                export, import, reset, logout, exit
//
// Handler errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fd%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: addfreight, (l)ist, show, edit, delete, generate, history, " +
				"addprofile, profiles, addfield, fields, rmfield, export, import, reset, logout, exit")
		} else {
			printlnFn("Available commands: register, login, exit")
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "addfreight", "l", "list", "show", "edit", "delete", "generate", "history",
			"addprofile", "profiles", "addfield", "fields", "rmfield", "export", "import", "reset", "logout":
			printlnFn("Please log in first")
		default:
			printlnFn("Unknown command:", cmd)
		}
		return nil
	}

	if u, ok := usage[cmd]; ok {
		need := 1
		if cmd == "generate" {
			need = 2
		}
		if len(args) < need {
			printlnFn(u)
			return nil
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "addfreight":
		return a.AddFreight(ctx)
	case "l", "list":
		return a.List(ctx)
	case "show":
		return a.Show(ctx, args[0])
	case "edit":
		return a.Edit(ctx, args[0])
	case "delete":
		return a.Delete(ctx, args[0])
	case "generate":
		return a.Generate(ctx, args[0], args[1])
	case "history":
		return a.History(ctx, args[0])
	case "addprofile":
		return a.AddProfile(ctx)
	case "profiles":
		return a.Profiles(ctx)
	case "addfield":
		return a.AddField(ctx)
	case "fields":
		return a.Fields(ctx)
	case "rmfield":
		return a.RemoveField(ctx, args[0])
	case "export":
		return a.Export(ctx, args[0])
	case "import":
		return a.Import(ctx, args[0])
	case "reset":
		return a.Reset(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
