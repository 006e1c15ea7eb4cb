package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	email, err := a.tokens.Email(context.Background())
	if err != nil || email == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", email)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
