// tracedump is a CLI front-end for pkg/trace: it opens a (possibly
// compressed) trace file, decodes it call by call, and prints the
// result as text or JSON. It is a thin demonstration consumer, out of
// scope for the core parser itself.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tracefmt/tracefmt/pkg/trace"
	"github.com/tracefmt/tracefmt/pkg/trace/bytesource"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		jsonOut    bool
		textOut    bool
		maxCalls   int
	)

	cmd := &cobra.Command{
		Use:   "tracedump <trace-file>",
		Short: "Decode a binary API-call trace and print its calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if textOut {
				cfg.OutputFormat = "text"
			}
			if jsonOut {
				cfg.OutputFormat = "json"
			}
			if maxCalls > 0 {
				cfg.MaxCalls = maxCalls
			}
			if !cfg.Color {
				warnColor.DisableColor()
			}

			return run(args[0], cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML preferences file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print calls as JSON (overrides config/--text)")
	cmd.Flags().BoolVar(&textOut, "text", false, "print calls as human-readable text")
	cmd.Flags().IntVar(&maxCalls, "max-calls", 0, "stop after this many calls (0 = unlimited)")

	return cmd
}

func run(path string, cfg Config) error {
	noColor := !cfg.Color || !term.IsTerminal(int(os.Stderr.Fd()))
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}).With().Timestamp().Logger()

	src, err := bytesource.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	p, err := trace.Open(src, trace.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("reading trace header: %w", err)
	}
	defer p.Close()

	enc := json.NewEncoder(os.Stdout)
	count := 0
	for {
		if cfg.MaxCalls > 0 && count >= cfg.MaxCalls {
			break
		}
		call, err := p.ParseCall()
		if err != nil {
			return fmt.Errorf("parsing trace: %w", err)
		}
		if call == nil {
			break
		}
		if cfg.OutputFormat == "json" {
			writeCallJSON(os.Stdout, enc, call)
		} else {
			writeCallText(os.Stdout, call)
		}
		count++
	}

	return nil
}
