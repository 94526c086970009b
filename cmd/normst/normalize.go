package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fractalqb/normst"
)

func init() {
	normalizeCmd.RunE = normalizeFile
	rootCmd.AddCommand(&normalizeCmd)
}

var normalizeCmd = cobra.Command{
	Use:   "normalize [actual]",
	Short: "Print actual data normalized to a pattern",
	Args:  cobra.MaximumNArgs(1),
}

func normalizeFile(cmd *cobra.Command, files []string) error {
	pattern, err := loadPattern()
	if err != nil {
		return err
	}
	var actual normst.Data
	if len(files) == 0 {
		actual, err = readActual(pattern.Format(), os.Stdin)
	} else {
		actual, err = readActualFile(pattern.Format(), files[0])
	}
	if err != nil {
		return err
	}
	norm := normst.NormalizeData(actual, pattern, redactions)
	_, err = cmd.OutOrStdout().Write(norm.Bytes())
	return err
}
