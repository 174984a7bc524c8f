package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/klauern/agentsync/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and maps its outcome to an exit code. A failed check
// has already printed its report, so only other errors are echoed.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := cli.RunWithIO(ctx, args, stdout, stderr)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrOutOfSync):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
