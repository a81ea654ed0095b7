// Command numbers counts to 20, announcing each number before it is
// produced and reporting it once received.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/lmittmann/tint"
	"github.com/mr-joshcrane/numbers"
	"github.com/mr-joshcrane/numbers/store"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		count       = numbers.DefaultBound
		sequence    = "count"
		name        = "numbers"
		record      string
		eventBridge bool
		verbosity   int
	)

	flags := pflag.NewFlagSet(filepath.Base(os.Args[0]), pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  %s [flags]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Flags:\n")
		flags.PrintDefaults()
	}
	flags.IntVarP(&count, "count", "n", count, "how many numbers to produce")
	flags.StringVar(&sequence, "sequence", sequence, "sequence to produce: "+strings.Join(numbers.Sequences, ", "))
	flags.StringVar(&name, "name", name, "publisher name stamped on every message")
	flags.StringVar(&record, "record", record, "also record the transcript in a store (memory:, dynamodb:<table>, *.db, or a file path)")
	flags.BoolVar(&eventBridge, "eventbridge", eventBridge, "also publish every message to AWS EventBridge")
	flags.CountVarP(&verbosity, "verbose", "v", "verbosity level: warn (0), info, debug")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() != 0 {
		flags.Usage()
		return 2
	}

	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:   verbosityToLevel(verbosity),
		NoColor: os.Getenv("NO_COLOR") != "",
	}))

	transports := numbers.MultiTransport{numbers.NewWriterTransport(stdout)}

	if record != "" {
		s, err := store.Open(record)
		if err != nil {
			logger.Error("failed to open transcript store", "dsn", record, tint.Err(err))
			return 1
		}
		defer func() {
			if err := store.Close(s); err != nil {
				logger.Warn("failed to close transcript store", tint.Err(err))
			}
		}()
		logger.Info("recording transcript", "dsn", record)
		transports = append(transports, &numbers.StoreTransport{Store: s})
	}

	if eventBridge {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Error("failed to load AWS config", tint.Err(err))
			return 1
		}
		transports = append(transports, &numbers.EventBridgeTransport{
			EventBridge: eventbridge.NewFromConfig(cfg),
		})
	}

	publisher := numbers.NewPublisher(name,
		numbers.WithTransport(transports),
		numbers.WithPublisherLogger(logger))

	seq, producerErr, err := numbers.Sequence(sequence, count, publisher, numbers.WithLogger(logger))
	if err != nil {
		logger.Error("invalid sequence", "sequence", sequence, tint.Err(err))
		return 2
	}
	if err := numbers.Drive(seq, publisher); err != nil {
		logger.Error("failed to report number", tint.Err(err))
		return 1
	}
	if err := producerErr(); err != nil {
		logger.Error("failed to produce number", tint.Err(err))
		return 1
	}

	logger.Debug("done", "published", publisher.Published())
	return 0
}

// verbosityToLevel maps -v counts to warn (0), info (1) and debug (2+).
func verbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
