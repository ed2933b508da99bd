package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/userform/internal/config"
	"github.com/dshills/userform/internal/directory"
	"github.com/dshills/userform/internal/logger"
	"github.com/dshills/userform/internal/metrics"
	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/render"
	"github.com/dshills/userform/internal/submission"
	"github.com/dshills/userform/internal/terminal"
	"github.com/dshills/userform/internal/validate"
	"github.com/dshills/userform/internal/view"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// fillFlags holds the flags of the fill command that are not config keys.
type fillFlags struct {
	configPath string
	verbose    bool
}

func main() {
	root := &cobra.Command{
		Use:   "userform",
		Short: "Fill in and submit the user registration form",
		Long:  "userform collects a user's name, birth date, email, department and terms acceptance, validates them, and stores the record.",
	}

	var flags fillFlags
	fillCmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the form interactively and submit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runFill(ctx, cmd.Flags(), flags, os.Stdin, os.Stdout, os.Stderr)
		},
	}

	registerFillFlags(fillCmd.Flags(), &flags)

	checkCmd := &cobra.Command{
		Use:   "check <field> <value>",
		Short: "Validate a single field value",
		Long:  "Validate a value the way the form does on blur. Exits 2 when the value is not valid.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], args[1], cmd.OutOrStdout())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "userform", version)
		},
	}

	root.AddCommand(fillCmd, checkCmd, versionCmd)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

// registerFillFlags declares the fill flags. Flags named like config keys
// are read back through config.Load.
func registerFillFlags(f *pflag.FlagSet, flags *fillFlags) {
	f.StringVar(&flags.configPath, "config", "", "Config file (default ./userform.yaml or $HOME/.userform/userform.yaml)")
	f.String("store-url", config.DefaultStoreURL, "Base URL of the store serving departments and users")
	f.String("format", "text", "Form rendering: text or json")
	f.String("log-level", "warn", "Log level: debug, info, warn, or error")
	f.String("log-format", "console", "Log encoding: console or json")
	f.String("metrics-file", "", "Write request counters in Prometheus text format to this file on exit")
	f.BoolVar(&flags.verbose, "verbose", false, "Log processing steps to stderr (same as --log-level debug)")
}

func runFill(ctx context.Context, fs *pflag.FlagSet, flags fillFlags, in io.Reader, out, errOut io.Writer) error {
	cfg, err := config.Load(flags.configPath, fs)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(errOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return codeError(3, "creating logger: %s", err)
	}

	renderer, err := render.NewRenderer(cfg.Output.Format)
	if err != nil {
		return codeError(3, "%s", err)
	}

	m := metrics.New()
	httpClient := &http.Client{}
	dir := directory.New(cfg.Store.URL, httpClient)
	sub := submission.New(cfg.Store.URL, httpClient)
	log.Debugw("store configured", "departments", dir.URL(), "users", sub.URL())

	prompter := terminal.NewPrompter(in, out)
	v := view.New(dir, sub, prompter, view.WithLogger(log), view.WithMetrics(m))

	runErr := terminal.NewSession(v, renderer, prompter, out).Run(ctx)

	if cfg.Metrics.File != "" {
		if err := m.WriteFile(cfg.Metrics.File); err != nil {
			log.Errorw("writing metrics", "file", cfg.Metrics.File, "error", err)
			if runErr == nil {
				return codeError(3, "writing metrics: %s", err)
			}
		}
	}
	if runErr != nil {
		return codeError(1, "%s", runErr)
	}
	return nil
}

func runCheck(name, value string, out io.Writer) error {
	f, err := record.ParseField(name)
	if err != nil {
		return codeError(3, "%s", err)
	}
	raw := record.Default().With(f, value).Value(f)
	res := validate.Field(f, raw)
	if res != validate.Valid {
		fmt.Fprintf(out, "%s: %s\n", f, validate.Message(f, res))
		return codeError(2, "%s is %s", f, res)
	}
	fmt.Fprintf(out, "%s: ok\n", f)
	return nil
}
