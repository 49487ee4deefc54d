package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/ledgerview/internal/core"
	"github.com/JonMunkholm/ledgerview/internal/logging"
	"github.com/JonMunkholm/ledgerview/internal/sheet"
	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

type options struct {
	fund        string
	sort        string
	format      string
	listOptions bool
	logLevel    string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sheetview [file]",
		Short: "Show a ledger workbook filtered by fund and sorted by date",
		Long: `sheetview reads the first sheet of an .xlsx or .xls workbook and prints
its rows. The first row is the header; rows can be narrowed to one fund
and ordered by the date column.

Reads the workbook from stdin when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.fund, "fund", viewmodel.FilterAll, "show only rows of this fund")
	f.StringVar(&opts.sort, "sort", string(viewmodel.Ascending), "date order (asc, desc)")
	f.StringVar(&opts.format, "format", "table", "output format (table, json)")
	f.BoolVar(&opts.listOptions, "options", false, "list the fund filter options instead of rows")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	logger := logging.New(cmd.ErrOrStderr(), opts.logLevel, "text")

	dir, ok := viewmodel.ParseSortDirection(opts.sort)
	if !ok {
		return fmt.Errorf("invalid --sort %q: want asc or desc", opts.sort)
	}
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("invalid --format %q: want table or json", opts.format)
	}

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer file.Close()
		in, name = file, args[0]
	}

	t, err := sheet.ParseReader(core.NewContextReader(cmd.Context(), in))
	if err != nil {
		logger.Debug("parse failed", "file", name, "error", err)
		return fmt.Errorf("%s: %s", name, core.FormatUserError(err))
	}

	v := viewmodel.Build(t, opts.fund, dir)
	logger.Info("workbook loaded",
		"file", name,
		"rows", v.TotalRows,
		"shown", len(v.Rows),
		"filter", v.FilterOutcome.String(),
		"sort", v.SortOutcome.String(),
	)

	out := cmd.OutOrStdout()
	if opts.listOptions {
		return writeOptions(out, opts.format, v.FundOptions)
	}
	if opts.format == "json" {
		return writeJSON(out, v)
	}
	return writeTable(out, v)
}

func writeOptions(w io.Writer, format string, funds []string) error {
	if format == "json" {
		return writeJSON(w, funds)
	}
	for _, fund := range funds {
		if _, err := fmt.Fprintln(w, fund); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, v viewmodel.View) error {
	if len(v.Headers) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("(empty sheet)"))
		return err
	}

	rows := make([][]string, len(v.Rows))
	for i, row := range v.Rows {
		// Pad ragged rows so every line has a cell per header.
		cells := make([]string, len(v.Headers))
		copy(cells, row)
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(v.Headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	summary := strconv.Itoa(len(v.Rows)) + " / " + strconv.Itoa(v.TotalRows) + " rows, sorted by date " + v.Sort.Arrow()
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), mutedStyle.Render(summary))
	return err
}
