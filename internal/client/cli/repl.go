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
	Products(ctx context.Context) error
	CartAdd(ctx context.Context, args []string) error
	CartList(ctx context.Context) error
	CartClear(ctx context.Context) error
	Checkout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the storefront CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//   - help                — show available commands
//   - register / login    — account bootstrap
//   - products            — list the catalog
//   - add <id> [qty]      — put a product into the cart
//   - cart                — show the cart with current prices
//   - clear               — empty the cart
//   - checkout            — walk the three-step checkout
//   - profile / edit      — view or edit the profile
//   - delete-account      — delete the account
//   - logout              — drop the local session
//   - exit | quit         — leave the program
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: products, add <id> [qty], cart, clear, checkout, profile, edit, delete-account, logout, exit")
			} else {
				printlnFn("Available commands: products, add <id> [qty], cart, clear, checkout, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "p", "products":
			_ = a.Products(ctx)

		case "add":
			_ = a.CartAdd(ctx, args)

		case "cart":
			_ = a.CartList(ctx)

		case "clear":
			_ = a.CartClear(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
