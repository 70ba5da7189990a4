package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/rickb777/servefiles/v3"
	"github.com/rickb777/srcsetlint/batch"
	"github.com/rickb777/srcsetlint/config"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/server"
	"github.com/rickb777/srcsetlint/srcset"
	"github.com/sgreben/flagvar"
	"github.com/spf13/afero"
)

var (
	version = "dev"
	date    = ""
)

const (
	formatText = "text"
	formatJSON = "json"
)

//-------------------------------------------------------------------------------------------------

type Arguments struct {
	Paths      []string
	Value      string
	CheckValue bool // -value was given, even if empty

	Include flagvar.Strings
	Exclude flagvar.Strings
	Format  flagvar.Enum

	Concurrency int
	Mixed       bool

	Rewrite   bool
	BaseURL   string
	Directory string

	Serve      bool
	ServerPort int

	Verbose bool
	Debug   bool
}

func declareFlags(fs *flag.FlagSet) *Arguments {
	arguments := &Arguments{
		Format: flagvar.Enum{Choices: []string{formatText, formatJSON}, Value: formatText},
	}

	fs.StringVar(&arguments.Value, "value", "", "check a single srcset `value` instead of files")

	fs.Var(&arguments.Include, "i", "only check files whose path matches a `regular expression` (can be repeated)")
	fs.Var(&arguments.Exclude, "x", "skip files whose path matches a `regular expression` (can be repeated)")
	fs.Var(&arguments.Format, "format", "output `format`: "+strings.Join(arguments.Format.Choices, " or "))

	fs.IntVar(&arguments.Concurrency, "concurrency", 0, "the number of files checked concurrently (default the number of CPUs)")
	fs.BoolVar(&arguments.Mixed, "mixed", false, "warn about srcsets that mix width and density descriptors")

	fs.BoolVar(&arguments.Rewrite, "rewrite", false, "write copies of the documents with their links made relative")
	fs.StringVar(&arguments.BaseURL, "base", "", "the `URL` at which the checked files are published (default http://localhost/)")
	fs.StringVar(&arguments.Directory, "dir", "", "`directory` to write rewritten files to and to serve files from")

	fs.BoolVar(&arguments.Serve, "serve", false, "run a webserver that checks srcset values and documents, and serves the -dir directory")
	fs.IntVar(&arguments.ServerPort, "port", 8080, "port to use for the webserver")

	fs.BoolVar(&arguments.Verbose, "v", false, "verbose output")
	fs.BoolVar(&arguments.Debug, "z", false, "debug output")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Check the srcset attributes of HTML, XHTML and CSS files.\n\n")
		fmt.Fprintf(fs.Output(), "Usage:\n")
		fmt.Fprintf(fs.Output(), "  %s [options] [<file or directory> ...]\n", fs.Name())
		fmt.Fprintf(fs.Output(), "  %s -value '<srcset>'\n\n", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nOptions also accept '--'.\nVersion %s\n", formatVersion(version, date))
	}

	return arguments
}

//-------------------------------------------------------------------------------------------------

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	args := declareFlags(flags)
	_ = flags.Parse(os.Args[1:]) // exits on error
	args.Paths = flags.Args()
	args.CheckValue = isFlagSet(flags, "value")

	createLogger(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !args.Serve && len(args.Paths) == 0 && !args.CheckValue {
		fmt.Printf("Must provide -value, -serve or files to check\n")
		flags.Usage()
		logger.Exit(1)
	}

	code := run(ctx, args, afero.NewOsFs(), os.Stdout)
	stop()
	logger.Exit(code)
}

// run carries out the command and returns the exit status.
func run(ctx context.Context, args *Arguments, fs afero.Fs, out io.Writer) int {
	if args.CheckValue {
		return checkValue(args.Value, args.Format.Value, out)
	}

	if args.Serve && (args.ServerPort < 1 || args.ServerPort > 65535) {
		fmt.Fprintf(out, "Invalid port %d: must be between 1 and 65535\n", args.ServerPort)
		return 1
	}

	cfg := buildConfig(args)

	if args.Serve && len(args.Paths) == 0 {
		if err := server.Serve(ctx, cfg, fs, args.ServerPort); err != nil {
			logger.Error("Server execution error", slog.Any("error", err))
			return 1
		}
		return 0
	}

	b, err := batch.New(cfg, fs)
	if err != nil {
		fmt.Fprintf(out, "Config error: %s\n", err)
		return 1
	}

	results, err := b.Run(ctx, args.Paths...)
	if err != nil {
		logger.Error("Checking failed", slog.Any("error", err))
		fmt.Fprintf(out, "Error: %s\n", err)
		return 1
	}

	code := 0
	for _, r := range results {
		if r.Failed() {
			code = 1
		}
	}

	if err := writeResults(results, args.Format.Value, out); err != nil {
		logger.Error("Writing results failed", slog.Any("error", err))
		return 1
	}

	if args.Serve {
		if err := server.Serve(ctx, cfg, fs, args.ServerPort); err != nil {
			logger.Error("Server execution error", slog.Any("error", err))
			return 1
		}
	}

	return code
}

func buildConfig(args *Arguments) config.Config {
	cfg := config.Config{
		Includes: args.Include.Values,
		Excludes: args.Exclude.Values,

		Concurrency:          args.Concurrency,
		WarnMixedDescriptors: args.Mixed,

		Rewrite:         args.Rewrite,
		BaseURL:         args.BaseURL,
		OutputDirectory: args.Directory,
	}
	cfg.SensibleDefaults()
	return cfg
}

// checkValue parses one srcset value and prints the outcome.
func checkValue(value, format string, out io.Writer) int {
	result := srcset.Parse(value)

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return 1
		}
	} else if result.Success {
		fmt.Fprintf(out, "valid: %d candidates\n", len(result.Candidates))
		for _, c := range result.Candidates {
			fmt.Fprintf(out, "  %s\n", c)
		}
	} else {
		fmt.Fprintf(out, "invalid: %s\n", result.ErrorCode)
	}

	if !result.Success {
		return 1
	}
	return 0
}

func writeResults(results []batch.Result, format string, out io.Writer) error {
	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	var errs, warnings, checked int
	for _, r := range results {
		switch {
		case r.Err != nil:
			errs++
			fmt.Fprintf(out, "%s: %s\n", r.Source(), r.Err)
		case r.Report != nil:
			checked++
			errs += len(r.Report.Errors())
			warnings += len(r.Report.Warnings())
			if err := r.Report.WriteText(out); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(out, "%d files checked, %d errors, %d warnings\n", checked, errs, warnings)
	return err
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func createLogger(args *Arguments) {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}

	if args.Debug {
		opts.Level = slog.LevelDebug
		servefiles.Debugf = func(format string, v ...interface{}) { logger.Debug(fmt.Sprintf(format, v...)) }
	} else if args.Verbose {
		opts.Level = slog.LevelInfo
	} else {
		opts.Level = slog.LevelWarn
	}

	logger.Create(os.Stderr, opts)
}

// formatVersion builds a version string based on binary release information.
func formatVersion(version, date string) string {
	buf := strings.Builder{}
	buf.WriteString(version)

	buf.WriteString(" built with ")
	buf.WriteString(runtime.Version())
	if date != "" {
		buf.WriteString(" on ")
		buf.WriteString(date)
	}
	buf.WriteString(".")
	return buf.String()
}
