package main

import (
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

func main() {
	os.Exit(HandleExitError(os.Stderr, NewRootCommand().Execute()))
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "naviserv",
		Short:         "Spreadsheet service with formula evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCommand(), newEvalCommand())
	return rootCmd
}

func newServeCommand() *cobra.Command {
	config := AppConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return RunApp(ctx, config)
		},
	}

	cmd.Flags().StringVar(&config.DatabaseFilePath, "db", os.Getenv("DATABASE_FILEPATH"), "bbolt database file (env DATABASE_FILEPATH)")
	cmd.Flags().StringVar(&config.ListenAddr, "listen", envOrDefault("LISTEN_ADDR", DefaultListenAddr), "listen address (env LISTEN_ADDR)")
	return cmd
}

type evalOptions struct {
	cell      string
	overrides []string
}

func newEvalCommand() *cobra.Command {
	options := evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval [file.csv]",
		Short: "Evaluate a CSV sheet and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			return runEval(cmd.OutOrStdout(), file, options)
		},
	}

	cmd.Flags().StringVar(&options.cell, "cell", "", "print the result of a single cell, e.g. B3")
	cmd.Flags().StringArrayVar(&options.overrides, "set", nil, "evaluate with a changed cell value without touching the file, e.g. --set B3==A1*2")
	return cmd
}

func runEval(out io.Writer, in io.Reader, options evalOptions) error {
	sheet, err := ImportCSV(in)
	if err != nil {
		return err
	}

	overrides, err := parseOverrides(options.overrides)
	if err != nil {
		return err
	}

	executor, _ := NewFormulaEngine()
	grid := NewGridOverlay(overrides, sheet)

	if options.cell != "" {
		ref, err := ParseReference(NewCanonicalizer().CanonicalizeReference(options.cell))
		if err != nil {
			return err
		}

		value, err := executor.EvaluateCellWithError(ref, grid)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %s\n", FormatCellRef(ref), err)
		}
		_, err = fmt.Fprintln(out, value.String())
		return err
	}

	for ref, value := range overrides {
		if err = sheet.Set(ref, value); err != nil {
			return err
		}
	}

	renderTable(out, EvaluateRows(sheet, executor))
	return nil
}

// parseOverrides reads "REF=value" pairs, the value may start with "=" itself
func parseOverrides(pairs []string) (map[contracts.CellRef]string, error) {
	overrides := make(map[contracts.CellRef]string, len(pairs))
	canonicalizer := NewCanonicalizer()

	for _, pair := range pairs {
		reference, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: `%s` should be REF=value", contracts.InvalidReferenceError, pair)
		}

		ref, err := ParseReference(canonicalizer.CanonicalizeReference(reference))
		if err != nil {
			return nil, err
		}
		overrides[ref] = value
	}
	return overrides, nil
}

func renderTable(out io.Writer, rows [][]string) {
	width := NewSheet(rows).Width()

	header := make([]string, width+1)
	for col := 0; col < width; col++ {
		header[col+1] = strings.TrimSuffix(FormatReference(0, col), "1")
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for rowIndex, row := range rows {
		line := make([]string, width+1)
		line[0] = strconv.Itoa(rowIndex + 1)
		copy(line[1:], row)
		table.Append(line)
	}
	table.Render()
}

func envOrDefault(name string, defaultValue string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return defaultValue
}
