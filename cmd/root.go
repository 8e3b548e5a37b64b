package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/selimozcann/doicheck/internal/banner"
	"github.com/selimozcann/doicheck/internal/config"
	"github.com/selimozcann/doicheck/internal/httpclient"
	"github.com/selimozcann/doicheck/internal/logger"
	"github.com/selimozcann/doicheck/internal/output"
	"github.com/selimozcann/doicheck/internal/records"
	"github.com/selimozcann/doicheck/internal/runner"
	"github.com/selimozcann/doicheck/internal/trace"
)

// ErrChecksFailed is returned when at least one DOI did not resolve to its
// standard URL. The details have already been printed.
var ErrChecksFailed = errors.New("one or more DOIs failed to resolve")

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(os.Getenv)
	return exitCode(rootCmd.ExecuteContext(ctx), os.Stderr)
}

// exitCode maps the command result to 0 or 1, reporting fatal errors on
// stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrChecksFailed) {
		fmt.Fprintf(stderr, "[-] Error: %v\n", err)
	}
	return 1
}

// NewRootCmd builds the doicheck command. getenv supplies configuration
// overrides.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   "doicheck <doi_csv_filename>",
		Short: "Check that DOIs resolve to their standard URLs",
		Long: "doicheck reads a headerless CSV of doi,standard pairs, follows the\n" +
			"redirects of every DOI and reports whether it resolves to the expected\n" +
			"standard URL. It exits 1 if any DOI fails.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), getenv, args[0])
		},
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, getenv func(string) string, path string) error {
	cfg, err := config.Load(getenv)
	if err != nil {
		return err
	}
	policy, err := trace.ParsePolicy(cfg.ResolvePolicy)
	if err != nil {
		return err
	}

	log, err := logger.New(stderr, logger.Config{Level: cfg.LogLevel, NoColor: cfg.NoColor || !isTerminal(stderr)})
	if err != nil {
		return err
	}
	if f, ok := stderr.(*os.File); ok && cfg.Banner {
		banner.PrintIfTerminal(f)
	}

	recs, err := records.Load(path)
	if err != nil {
		return err
	}
	log.Info().Str("file", path).Int("records", len(recs)).Msg("loaded DOI records")

	useColor := !cfg.NoColor && isTerminal(stdout)
	if f, ok := stdout.(*os.File); ok {
		stdout = colorable.NewColorable(f)
	}
	printer := output.NewPrinter(stdout, useColor)

	tracer := trace.New(httpclient.New(httpclient.Config{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Headers:   cfg.HTTPHeader(),
	}))
	tracer.MaxRedirects = cfg.MaxRedirects
	tracer.Logger = log

	runr := runner.New(runner.Config{Policy: policy}, tracer, printer, log)
	sum := runr.Run(ctx, recs)
	printer.PrintSummary(sum)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d of %d DOI(s): %w", sum.Total, len(recs), err)
	}
	if sum.HasError() {
		return ErrChecksFailed
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && banner.IsTerminal(f)
}
