package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/icsbuild"
	"agenda.xdoubleu.com/apps/agenda/pkg/tablesource"
	"github.com/spf13/cobra"
)

const productID = "-//agenda.xdoubleu.com//extract//EN"

// The CLI reads whatever its user points it at.
//
//nolint:gochecknoglobals //read-only options
var local = tablesource.Options{AllowPrivate: true, AllowFiles: true}

type options struct {
	kind      string
	year      int
	out       string
	uidDomain string
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{
		kind:      "",
		year:      time.Now().Year(),
		out:       "",
		uidDomain: "agenda.xdoubleu.com",
		verbose:   false,
	}

	cmd := &cobra.Command{
		Use:   "extract <source>",
		Short: "Turn the tables of a school calendar into an ICS file",
		Long: "Reads every table of an HTML page or CSV file, collects the " +
			"events below each date cell and writes them as all-day events.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.kind, "kind", opts.kind, "source kind: html or csv (default: from extension)")
	flags.IntVar(&opts.year, "year", opts.year, "academic year the dates belong to")
	flags.StringVarP(&opts.out, "out", "o", opts.out, "output file (default: <source>_events.ics)")
	flags.StringVar(&opts.uidDomain, "uid-domain", opts.uidDomain, "domain used in event UIDs")
	flags.BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "log every extracted item")

	return cmd
}

func run(cmd *cobra.Command, source string, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	//nolint:exhaustruct //other fields are optional
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	client, err := clientFor(logger, source, opts.kind)
	if err != nil {
		return err
	}

	tables, err := client.Tables(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", source, err)
	}

	items := extract.Extract(tables)
	for _, item := range items {
		logger.Debug(
			"extracted item",
			slog.String("date", item.Date),
			slog.String("text", item.Text),
			slog.Any("tags", item.Tags),
		)
	}

	events := icsbuild.Merge(items, opts.year, opts.uidDomain)

	out := opts.out
	if out == "" {
		out = outputPath(source)
	}

	data := icsbuild.Encode(events, icsbuild.Options{
		ProductID: productID,
		Name:      strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)),
		Stamp:     time.Now(),
	})

	//nolint:mnd //file permissions
	if err = os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(
		cmd.OutOrStdout(),
		"%d tables, %d items, %d events written to %s\n",
		len(tables),
		len(items),
		len(events),
		out,
	)

	return nil
}

func clientFor(
	logger *slog.Logger,
	source string,
	kind string,
) (tablesource.Client, error) {
	if kind == "" {
		kind = "html"
		if strings.EqualFold(filepath.Ext(source), ".csv") {
			kind = "csv"
		}
	}

	switch kind {
	case "html":
		return tablesource.NewHTML(logger, local), nil
	case "csv":
		return tablesource.NewCSV(local), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %q", kind)
	}
}

// outputPath replaces the extension of a local source, or the last path
// segment of a URL, with _events.ics.
func outputPath(source string) string {
	base := filepath.Base(source)
	if strings.Contains(source, "://") {
		base = "calendar"
		if i := strings.LastIndex(source, "/"); i >= 0 && i < len(source)-1 {
			base = source[i+1:]
		}
		return strings.TrimSuffix(base, filepath.Ext(base)) + "_events.ics"
	}

	return strings.TrimSuffix(source, filepath.Ext(source)) + "_events.ics"
}
