// Command reader prints a transcript recorded with numbers --record.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/mr-joshcrane/numbers"
	"github.com/mr-joshcrane/numbers/store"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(_ context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		name  = "numbers"
		runID string
	)

	flags := pflag.NewFlagSet(filepath.Base(os.Args[0]), pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <store> [publisher]\n", filepath.Base(os.Args[0]))
		flags.PrintDefaults()
	}
	flags.StringVar(&name, "name", name, "publisher whose transcript to print")
	flags.StringVar(&runID, "run", runID, "only print messages from this run")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	switch flags.NArg() {
	case 1:
	case 2:
		name = flags.Arg(1)
	default:
		flags.Usage()
		return 2
	}

	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		NoColor: os.Getenv("NO_COLOR") != "",
	}))

	s, err := store.Open(flags.Arg(0))
	if err != nil {
		logger.Error("failed to open store", "dsn", flags.Arg(0), tint.Err(err))
		return 1
	}
	defer store.Close(s)

	reader := numbers.NewReader(name, s)
	reader.Run = runID
	messages, err := reader.NewMessages()
	if err != nil {
		logger.Error("failed to read transcript", tint.Err(err))
		return 1
	}
	for _, message := range messages {
		fmt.Fprintln(stdout, message)
	}
	return 0
}
