package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/internal/playground"
	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/formspec"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Set by the linker.
var (
	version   = "dev"
	buildTime = "unknown"
)

// errBlocked makes the process exit 1 without an error message.
var errBlocked = errors.New("submission blocked")

type globalFlags struct {
	catalog string
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Client-side form validation and table filtering rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&g.catalog, "catalog", "", "rule catalog YAML (default: built-in)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log engine decisions to stderr")

	cmd.AddCommand(
		newCheckCmd(g),
		newFilterCmd(g),
		newCatalogCmd(g),
		newServeCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "formkit %s (build: %s)\n", version, buildTime)
			},
		},
	)
	return cmd
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(level),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
}

func (g *globalFlags) loadCatalog() (*formspec.Catalog, error) {
	if g.catalog == "" {
		return formspec.Default(), nil
	}
	return formspec.LoadFile(g.catalog)
}

// loadDocument reads page as a file path, or as a built-in page name when no
// such file exists.
func loadDocument(page string) (*dom.Document, error) {
	if f, err := os.Open(page); err == nil {
		defer f.Close()
		return dom.Parse(f)
	} else if strings.ContainsAny(page, `/\.`) {
		return nil, err
	}
	pages, err := playground.Pages("")
	if err != nil {
		return nil, err
	}
	return playground.LoadPage(pages, page)
}

// parseAssignments splits repeated key=value flags, keeping their order.
func parseAssignments(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}
