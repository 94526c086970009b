// A command line tool to normalize program output to expected patterns
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fractalqb/normst"
)

// RedactionsEnv names the redactions file if the --redactions flag is not
// set.
const RedactionsEnv = "NORMST_REDACTIONS"

var rootCmd = struct {
	cobra.Command
	pattern    string
	format     string
	redactions string
	color      string
}{
	Command: cobra.Command{
		Use:   "normst",
		Short: "Normalize program output to expected patterns",
		Long: `Normalize program output to expected patterns

Patterns are the expected output with wildcards:
   ...    on a line of its own matches any number of lines
   [..]   matches any characters within a line
   [NAME] placeholder for redacted dynamic text
   "{...}" in JSON/YAML matches any value or any run of array elements
   "...": "{...}" in JSON/YAML objects accepts any unlisted keys

Redactions file (YAML or JSON):
   "[HOME]": /home/alice
   "[TIME]": {regex: '\d\d:\d\d:\d\d'}
   "[EXE]": ""`,
		SilenceUsage: true,
	},
}

// redactions are loaded before any command runs
var redactions *normst.Redactions

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootCmd.pattern, "pattern", "p", "",
		"Set pattern file name")
	flags.StringVarP(&rootCmd.format, "format", "f", "",
		"Set data format: text, json, jsonl, yaml or binary (default from pattern file)")
	flags.StringVarP(&rootCmd.redactions, "redactions", "R", "",
		"Set redactions file (default $"+RedactionsEnv+")")
	flags.StringVar(&rootCmd.color, "color", "auto",
		"Use colors: auto, always or never")
	rootCmd.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, args []string) (err error) {
	switch rootCmd.color {
	case "auto":
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) &&
			!isatty.IsCygwinTerminal(os.Stdout.Fd())
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode '%s'", rootCmd.color)
	}
	rfile := rootCmd.redactions
	if rfile == "" {
		rfile = os.Getenv(RedactionsEnv)
	}
	if rfile != "" {
		if redactions, err = normst.LoadRedactions(rfile); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("normst: ")
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errMismatch) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
