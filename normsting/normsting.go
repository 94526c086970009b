// Package normsting supports the use of normst in your Go tests.
//
// Example reads the pattern from testdata/TestGet.txt:
//
//	func TestGet(t *testing.T) {
//		resp, _ := http.Get("https://httpbin.org/get")
//		defer resp.Body.Close()
//		Error(t, "", resp.Body)
//	}
//
// Pattern:
//
//	{
//	  "args": {},
//	  "headers": {
//	...
//	    "User-Agent": "Go-http-client/[..]",
//	    "X-Amzn-Trace-Id": "Root=[..]"
//	  },
//	  "origin": "[..]",
//	  "url": "https://httpbin.org/get"
//	}
package normsting

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fractalqb/normst"
	"github.com/fractalqb/normst/internal/linediff"
)

// When this environment variable is set to a regexp and the name of the current
// test matches, calls to Error or Fatal will record the actual data as new
// pattern instead of comparing it. E.g.
//
//	NORMSTING_RECORD=TestRecording go test .
const RecordEnv = "NORMSTING_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go help
// test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint string, actual io.Reader) error {
	return defaultConfig.Error(t, hint, actual)
}

func Fatal(t *testing.T, hint string, actual io.Reader) {
	defaultConfig.Fatal(t, hint, actual)
}

func Record(t *testing.T, hint string, actual io.Reader) {
	defaultConfig.Record(t, hint, actual)
}

// ErrorValue compares the JSON encoding of actual with a JSON or YAML
// pattern file.
func ErrorValue(t *testing.T, hint string, actual any) error {
	return defaultConfig.ErrorValue(t, hint, actual)
}

func FatalValue(t *testing.T, hint string, actual any) {
	defaultConfig.FatalValue(t, hint, actual)
}

type RefRepo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix   = ".txt"
	ValueSuffix = ".json"
	NoSuffix    = "\x00"
)

// Filename returns the pattern file of test t. Without hint it is
// <Dir>/<TestName><Suffix>, otherwise <Dir>/<TestName>/<hint><Suffix>. A
// hint that ends with Suffix or names a data format by its extension is
// used as is.
func (rr RefRepo) Filename(t *testing.T, hint string) string {
	name := filepath.Join(rr.Dir, t.Name())
	suffix := rr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	switch {
	case hint == "":
		return name + suffix
	case suffix == "",
		strings.HasSuffix(hint, suffix),
		normst.FormatOf(hint) != normst.FormatText:
		return filepath.Join(name, hint)
	}
	return filepath.Join(name, hint+suffix)
}

type Config struct {
	// PatternFile names the pattern file for text data
	PatternFile func(t *testing.T, hint string) string
	// ValueFile names the pattern file for tree values. The file's
	// extension selects JSON or YAML when recording.
	ValueFile       func(t *testing.T, hint string) string
	Redactions      *normst.Redactions
	RecordOverwrite bool
	// KeepActual writes the actual data next to the pattern file if it
	// does not match.
	KeepActual bool
}

var defaultConfig = Config{
	PatternFile:     RefRepo{Dir: GoTestdataDir}.Filename,
	ValueFile:       RefRepo{Dir: GoTestdataDir, Suffix: ValueSuffix}.Filename,
	RecordOverwrite: false,
	KeepActual:      true,
}

// Mismatch is the error reported when actual data does not match its
// pattern.
type Mismatch struct {
	File string
	Diff string
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("mismatch with pattern %s:\n%s", m.File, m.Diff)
}

func (cfg Config) Error(t *testing.T, hint string, actual io.Reader) error {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, actual)
		return nil
	}
	err := cfg.compare(t, hint, actual)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, actual io.Reader) {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, actual)
		return
	}
	if err := cfg.compare(t, hint, actual); err != nil {
		t.Fatal(err)
	}
}

func (cfg Config) ErrorValue(t *testing.T, hint string, actual any) error {
	t.Helper()
	if recordTest(t) {
		cfg.RecordValue(t, hint, actual)
		return nil
	}
	err := cfg.compareValue(t, hint, actual)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) FatalValue(t *testing.T, hint string, actual any) {
	t.Helper()
	if recordTest(t) {
		cfg.RecordValue(t, hint, actual)
		return
	}
	if err := cfg.compareValue(t, hint, actual); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("normsting: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func readPattern(t *testing.T, file string) ([]byte, error) {
	pattern, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		t.Logf("to record a pattern file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return nil, fmt.Errorf("pattern file %s does not exist", file)
	}
	return pattern, err
}

func (cfg *Config) compare(t *testing.T, hint string, actual io.Reader) error {
	file := cfg.PatternFile(t, hint)
	pattern, err := readPattern(t, file)
	if err != nil {
		return err
	}
	act, err := io.ReadAll(actual)
	if err != nil {
		return err
	}
	norm := normst.NormalizeText(string(act), string(pattern), cfg.Redactions)
	if norm == string(pattern) {
		return nil
	}
	cfg.keep(t, file, act)
	return Mismatch{File: file, Diff: linediff.String(string(pattern), norm)}
}

func (cfg *Config) compareValue(t *testing.T, hint string, actual any) error {
	file := cfg.ValueFile(t, hint)
	raw, err := readPattern(t, file)
	if err != nil {
		return err
	}
	pattern, err := normst.DecodeValue(raw)
	if err != nil {
		return fmt.Errorf("pattern file %s: %w", file, err)
	}
	js, err := normst.EncodeJSON(actual)
	if err != nil {
		return fmt.Errorf("actual value: %w", err)
	}
	// Go values compare as the tree values they encode to
	act, err := normst.DecodeValue(js)
	if err != nil {
		return fmt.Errorf("actual value: %w", err)
	}
	norm := normst.NormalizeValue(act, pattern, cfg.Redactions)
	if normst.Equal(norm, pattern) {
		return nil
	}
	cfg.keep(t, file, js)
	return Mismatch{File: file, Diff: cmp.Diff(pattern, norm)}
}

func (cfg *Config) keep(t *testing.T, file string, actual []byte) {
	if !cfg.KeepActual {
		return
	}
	keepfile := file + ".actual"
	if err := os.WriteFile(keepfile, actual, 0666); err != nil {
		t.Logf("normsting: cannot keep actual data: %s", err)
		return
	}
	t.Logf("normsting: actual data kept in %s", keepfile)
}

func (cfg Config) Record(t *testing.T, hint string, actual io.Reader) {
	var buf bytes.Buffer
	prep := normst.Prepare{Redactions: cfg.Redactions}
	if err := prep.Text(&buf, actual); err != nil {
		t.Fatal(err)
	}
	cfg.write(t, cfg.PatternFile(t, hint), buf.Bytes())
}

func (cfg Config) RecordValue(t *testing.T, hint string, actual any) {
	file := cfg.ValueFile(t, hint)
	f := normst.FormatOf(file)
	if !f.Tree() {
		f = normst.FormatJSON
	}
	data, _ := normst.Value(f, actual).Render()
	data = cfg.Redactions.Redact(data)
	cfg.write(t, file, []byte(data))
}

func (cfg Config) write(t *testing.T, file string, data []byte) {
	if _, err := os.Stat(file); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("normsting: pattern file '%s' already exists", file)
	}
	dir := filepath.Dir(file)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(file, data, 0666); err != nil {
		t.Fatal(err)
	}
	t.Errorf("normsting recorder wrote: %s", file)
}
