package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/cpunion/claim-debate/pkg/report"
	"github.com/cpunion/claim-debate/pkg/verdict"
)

var errUnparseable = errors.New("verdict does not follow the required layout")

var verdictJSON bool

var verdictCmd = &cobra.Command{
	Use:   "verdict [file]",
	Short: "Parse an adjudicator verdict and print its scores",
	Long: `Parse verdict text from a file, or stdin when no file or "-" is given,
and print the scores. Exits non-zero when the text does not follow the
verdict layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readInput(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		v := verdict.Parse(text)
		if verdictJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return err
			}
		} else {
			report.NewPrinter(cmd.OutOrStdout()).ParsedVerdict(v)
		}

		if !v.Parsed() {
			return errUnparseable
		}
		return nil
	},
}

func init() {
	verdictCmd.Flags().BoolVar(&verdictJSON, "json", false, "print the parsed verdict as JSON")
}
