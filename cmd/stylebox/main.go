package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/internal/cli"
	boxerrors "github.com/matzehuels/stylebox/pkg/errors"
)

// Exit codes.
const (
	exitError     = 1
	exitUsage     = 2
	exitNotFound  = 3
	exitInterrupt = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(report(err))
	}
}

// report prints err and picks the exit code for it.
func report(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}
	code := boxerrors.GetCode(err)
	if code == "" {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", code, boxerrors.UserMessage(err))
	switch {
	case boxerrors.IsNotFound(err):
		return exitNotFound
	case code == boxerrors.ErrCodeInternal:
		return exitError
	}
	return exitUsage
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known once flags are parsed.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
