package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/fractalqb/normst"
	"github.com/fractalqb/normst/internal/linediff"
)

func init() {
	compareCmd.RunE = compareFiles
	compareCmd.Flags().BoolVarP(&compareCmd.quiet, "quiet", "q", false,
		"Do not show diffs")
	rootCmd.AddCommand(&compareCmd.Command)
}

var compareCmd = struct {
	cobra.Command
	quiet bool
}{
	Command: cobra.Command{
		Use:   "compare [actual...]",
		Short: "Check if actual data matches a pattern",
	},
}

var errMismatch = errors.New("mismatch")

func compareFiles(cmd *cobra.Command, files []string) error {
	pattern, err := loadPattern()
	if err != nil {
		return err
	}
	failed := 0
	if len(files) == 0 {
		if !check(cmd.OutOrStdout(), pattern, "stdin", os.Stdin) {
			failed++
		}
	}
	for _, f := range files {
		if !checkFile(cmd.OutOrStdout(), pattern, f) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, max(len(files), 1), errMismatch)
	}
	return nil
}

func checkFile(w io.Writer, pattern normst.Data, name string) bool {
	rd, err := os.Open(name)
	if err != nil {
		log.Println(err)
		return false
	}
	defer rd.Close()
	return check(w, pattern, name, rd)
}

func check(w io.Writer, pattern normst.Data, name string, rd io.Reader) bool {
	actual, err := readActual(pattern.Format(), rd)
	if err != nil {
		log.Printf("%s: %s", name, err)
		return false
	}
	norm := normst.NormalizeData(actual, pattern, redactions)
	if matches(norm, pattern) {
		log.Printf("%s matches pattern %s\n", name, rootCmd.pattern)
		return true
	}
	log.Printf("%s mismatch with %s", name, rootCmd.pattern)
	if compareCmd.quiet {
		return false
	}
	pt, _ := pattern.Render()
	nt, _ := norm.Render()
	if err = linediff.Write(w, pt, nt); err != nil {
		log.Println(err)
	}
	return false
}
