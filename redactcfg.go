package normst

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ConfigError reports an invalid entry of a redaction configuration.
type ConfigError struct {
	Placeholder string
	err         error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("redaction %s: %s", e.Placeholder, e.err)
}

func (e ConfigError) Unwrap() error { return e.err }

// ReadRedactions reads a YAML or JSON mapping from placeholders to
// matchers. A matcher is a literal string, an object {regex: <expr>} or a
// list of those:
//
//	"[HOME]": /home/alice
//	"[TIME]": {regex: '\d\d:\d\d:\d\d'}
//	"[EXE]": ""
//	"[TMP]": [/tmp, {regex: '/var/folders/[^ ]+'}]
func ReadRedactions(r io.Reader) (*Redactions, error) {
	var cfg yaml.MapSlice
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("redactions: %w", err)
	}
	res := NewRedactions()
	for _, item := range cfg {
		ph, ok := item.Key.(string)
		if !ok {
			return nil, ConfigError{
				Placeholder: fmt.Sprint(item.Key),
				err:         errors.New("placeholder is not a string"),
			}
		}
		ms, err := configMatchers(item.Value)
		if err != nil {
			return nil, ConfigError{Placeholder: ph, err: err}
		}
		for _, m := range ms {
			if err = res.Insert(ph, m); err != nil {
				return nil, ConfigError{Placeholder: ph, err: err}
			}
		}
	}
	return res, nil
}

// LoadRedactions reads redactions from a file, see ReadRedactions.
func LoadRedactions(file string) (*Redactions, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	res, err := ReadRedactions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return res, nil
}

func configMatchers(v any) ([]Matcher, error) {
	switch m := v.(type) {
	case nil:
		return []Matcher{Literal("")}, nil
	case string:
		return []Matcher{Literal(m)}, nil
	case yaml.MapSlice:
		if len(m) != 1 || m[0].Key != "regex" {
			return nil, errors.New("expect {regex: <expr>}")
		}
		expr, ok := m[0].Value.(string)
		if !ok {
			return nil, fmt.Errorf("regex is %T, not a string", m[0].Value)
		}
		rx, err := CompileRegexp(expr)
		if err != nil {
			return nil, err
		}
		return []Matcher{rx}, nil
	case []any:
		var res []Matcher
		for _, e := range m {
			if _, nested := e.([]any); nested {
				return nil, errors.New("nested matcher list")
			}
			ms, err := configMatchers(e)
			if err != nil {
				return nil, err
			}
			res = append(res, ms...)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unsupported matcher %T", v)
}
