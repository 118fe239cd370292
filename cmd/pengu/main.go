// Command pengu is an interactive terminal assistant for learning Linux
// commands, backed by a locally running inference server.
//
// Usage:
//
//	pengu [flags]
//
// Flags:
//
//	-b, --backend string              The backend to use (default "ollama")
//	-m, --model string                The model to use (default "gemma3:12b")
//	    --base-url string             Inference server base URL (default "http://localhost:11434")
//	    --config string               Path to the configuration file
//	-t, --max-tokens int              Maximum tokens to generate
//	    --temperature float           Sampling temperature
//	    --completion-timeout duration Maximum time to wait for a response
//	    --stream                      Stream responses from the server
//	-v, --verbose                     Verbose output
//	    --debug                       Debug output
//	-h, --help                        Display help information
//
// Once running, pengu reads one line at a time: "tutorial <command>" and
// "steps <task>" start a new conversation, free text asks a follow-up in the
// current one, and help/clear/quit do what they say.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/pengu-sh/pengu/backends"
	"github.com/pengu-sh/pengu/backends/ollama"
	"github.com/pengu-sh/pengu/chat"
	"github.com/pengu-sh/pengu/options"
)

var (
	flagBackend = flag.StringP("backend", "b", "ollama", "The backend to use")
	flagModel   = flag.StringP("model", "m", "", "The model to use")
	flagBaseURL = flag.String("base-url", "http://localhost:11434", "Inference server base URL")

	flagConfig  = flag.String("config", "", "Path to the configuration file")
	flagVerbose = flag.BoolP("verbose", "v", false, "Verbose output")
	flagDebug   = flag.BoolP("debug", "", false, "Debug output")

	flagMaxTokens   = flag.IntP("max-tokens", "t", 4096, "Maximum tokens to generate")
	flagTemperature = flag.Float64("temperature", 0.05, "Sampling temperature")
	flagTimeout     = flag.DurationP("completion-timeout", "", 2*time.Minute, "Maximum time to wait for a response")
	flagStream      = flag.Bool("stream", true, "Stream responses from the server")
	flagHelp        = flag.BoolP("help", "h", false, "")

	// hidden flags
	flagReadlineHistoryFile = flag.String("readline-history-file", "~/.pengu_history", "File to store readline history in")
	flagShowSpinner         = flag.Bool("show-spinner", true, "Show spinner while waiting for a response")
	flagSkipHealthCheck     = flag.Bool("skip-health-check", false, "Skip the startup connectivity check")
)

func main() {
	initFlags()

	ctx := context.Background()

	cfg, err := options.LoadConfig(os.Stderr, flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := NewLogger(os.Stderr, *flagVerbose, *flagDebug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	model, err := backends.InitializeModel(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Verify the inference server is reachable before entering the loop so
	// a missing server fails fast instead of on the first question.
	if cfg.Backend == "ollama" && !*flagSkipHealthCheck {
		if err := checkServer(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "pengu: cannot connect to the inference server at %s\n", cfg.BaseURL)
			fmt.Fprintln(os.Stderr, "pengu: make sure Ollama is running: ollama serve")
			os.Exit(1)
		}
		logger.Infof("inference server reachable at %s", cfg.BaseURL)
	}

	s, err := chat.New(&chat.Config{
		Model:             cfg.Model,
		MaxTokens:         cfg.MaxTokens,
		Temperature:       cfg.Temperature,
		CompletionTimeout: cfg.CompletionTimeout,
		Stream:            cfg.Stream,
	}, model,
		chat.WithLogger(logger),
		chat.WithOptions(chat.Options{
			Stdout:              os.Stdout,
			Stderr:              os.Stderr,
			ShowSpinner:         *flagShowSpinner,
			ReadlineHistoryFile: *flagReadlineHistoryFile,
		}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func checkServer(ctx context.Context, cfg *options.Config) error {
	b, err := ollama.New(ollama.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return err
	}
	return b.Ping(ctx)
}

func initFlags() {
	flag.CommandLine.SortFlags = false
	flag.CommandLine.MarkHidden("readline-history-file")
	flag.CommandLine.MarkHidden("show-spinner")
	flag.CommandLine.MarkHidden("skip-health-check")
	flag.Usage = func() {
		fmt.Println("pengu is an interactive assistant for learning Linux commands")
		fmt.Println()
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.CommandLine.PrintDefaults()
		fmt.Println(`
Examples:
	$ pengu
	λ ▶ tutorial grep
	λ ▶ what does -i do?
	λ ▶ steps set up a systemd service`)
	}
	flag.Parse()
	if *flagHelp {
		flag.Usage()
		os.Exit(0)
	}
}
