// Package main is the entry point for the mathfield formula editor.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/mathfield/internal/app"
	"github.com/dshills/mathfield/internal/field"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app   app.Options
	typed string
	json  bool
	query string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
		os.Exit(130)
	}()

	if opts.typed != "" {
		if err := application.Do(func(f *field.Field) error { return f.TypeText(opts.typed) }); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Commands come from stdin unless the formula was given on the command
	// line and stdin is an interactive terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	given := opts.app.Latex != "" || opts.typed != ""
	if !given || !interactive {
		r := &repl{
			in:     bufio.NewScanner(os.Stdin),
			out:    os.Stdout,
			prompt: interactive,
		}
		if err := r.run(application); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if interactive {
			return 0
		}
	}

	return printResult(os.Stdout, application, opts)
}

func printResult(w io.Writer, application *app.Application, opts cliOptions) int {
	err := application.Do(func(f *field.Field) error {
		if !opts.json && opts.query == "" {
			_, err := fmt.Fprintln(w, f.Latex())
			return err
		}
		out, err := snapshot(f, opts.query)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.app.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")
	flag.StringVar(&opts.app.FieldID, "id", "", "Field identifier")
	flag.StringVar(&opts.app.Latex, "latex", "", "Initial LaTeX content")
	flag.StringVar(&opts.typed, "type", "", "Text typed into the field after loading")
	flag.BoolVar(&opts.json, "json", false, "Print the field snapshot as JSON")
	flag.StringVar(&opts.query, "query", "", "Print one value of the JSON snapshot (e.g. cursor.depth, nodes.#)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mathfield - structural formula editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathfield [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands (one per line on stdin):\n%s", commandHelp)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mathfield                          Edit interactively\n")
		fmt.Fprintf(os.Stderr, "  mathfield -type 'x^2' -json        Type and print the snapshot\n")
		fmt.Fprintf(os.Stderr, "  echo sqrtx | mathfield             Edit from a script\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("mathfield %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.app.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", flag.Args())
		os.Exit(1)
	}

	return opts
}
