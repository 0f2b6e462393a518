// Package main provides the xlwrap command line tool.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javajack/xlwrap"
	"github.com/javajack/xlwrap/script"
)

var (
	verbose    bool
	outputPath string
	asDate     bool
	logger     zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlwrap",
		Short: "Read, write and navigate xlsx workbooks from the command line",
		Long: `xlwrap exposes the workbook, worksheet and range operations legacy
automation scripts use: reading and writing typed cell values, END+arrow
navigation and expression scripting.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	getCmd := &cobra.Command{
		Use:   "get FILE SHEET REF",
		Short: "Print the value of a cell",
		Args:  cobra.ExactArgs(3),
		RunE:  runGet,
	}

	setCmd := &cobra.Command{
		Use:   "set FILE SHEET REF VALUE",
		Short: "Write a number, text or date (dd/mm/yyyy) into a cell",
		Args:  cobra.ExactArgs(4),
		RunE:  runSet,
	}
	setCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite FILE)")
	setCmd.Flags().BoolVar(&asDate, "date", false, "Parse VALUE as a dd/mm/yyyy date")

	endCmd := &cobra.Command{
		Use:   "end FILE SHEET REF DIRECTION",
		Short: "Print the A1 reference where END+arrow lands from a cell (DIRECTION: up, down, left, right)",
		Args:  cobra.ExactArgs(4),
		RunE:  runEnd,
	}

	evalCmd := &cobra.Command{
		Use:   "eval FILE EXPRESSION",
		Short: "Evaluate an expression against the workbook",
		Long: `Evaluate an expr-lang expression. Available: sheet(name), sheetAt(i),
active(), sheets(), Up/Down/Left/Right, Ascending/Descending, ByRows/ByColumns.

Example:
  xlwrap eval book.xlsx 'sheet("Data").Range("A1").End(Down).Address()'`,
		Args: cobra.ExactArgs(2),
		RunE: runEval,
	}

	describeCmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "List the worksheets of a workbook with their used row counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribe,
	}

	rootCmd.AddCommand(getCmd, setCmd, endCmd, evalCmd, describeCmd)
	return rootCmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	wb, err := xlwrap.OpenWorkbook(args[0], xlwrap.WithLogger(logger))
	if err != nil {
		return err
	}
	defer wb.Close()

	output, err := wb.Describe()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

func openRange(path, sheet, ref string) (*xlwrap.Workbook, xlwrap.Range, error) {
	wb, err := xlwrap.OpenWorkbook(path, xlwrap.WithLogger(logger))
	if err != nil {
		return nil, xlwrap.Range{}, err
	}
	ws, err := wb.Worksheet(sheet)
	if err != nil {
		wb.Close()
		return nil, xlwrap.Range{}, err
	}
	r, err := ws.Range(ref)
	if err != nil {
		wb.Close()
		return nil, xlwrap.Range{}, err
	}
	return wb, r, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	wb, r, err := openRange(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	defer wb.Close()

	v, err := r.Value()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	v, err := parseValue(args[3], asDate)
	if err != nil {
		return err
	}

	wb, r, err := openRange(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := r.SetValue(v); err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = args[0]
	}
	if err := wb.SaveAs(out, xlwrap.FormatXLSX); err != nil {
		return err
	}
	logger.Info().Str("cell", r.String()).Str("kind", v.Kind().String()).Str("path", out).Msg("Cell written")
	return nil
}

// parseValue reads a command line value: a date when asked for, otherwise a
// number when it parses as one, otherwise text.
func parseValue(s string, date bool) (xlwrap.Value, error) {
	if date {
		t, err := time.Parse("02/01/2006", s)
		if err != nil {
			return xlwrap.Value{}, fmt.Errorf("parse date %q: want dd/mm/yyyy", s)
		}
		return xlwrap.Date(t), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return xlwrap.Number(f), nil
	}
	return xlwrap.Text(s), nil
}

func runEnd(cmd *cobra.Command, args []string) error {
	d, err := xlwrap.ParseDirection(args[3])
	if err != nil {
		return err
	}

	wb, r, err := openRange(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	defer wb.Close()

	end, err := r.End(d)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), end.Bounds())
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	wb, err := xlwrap.OpenWorkbook(args[0], xlwrap.WithLogger(logger))
	if err != nil {
		return err
	}
	defer wb.Close()

	result, err := script.NewEvaluator(wb).Evaluate(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}
