package normst

import (
	"bufio"
	"io"
)

// Prepare writes an initial pattern for an actual text. The pattern is the
// actual text with all parts recognized by Redactions replaced by their
// placeholders. Line separators are kept as they are.
type Prepare struct {
	Redactions *Redactions
}

func (p Prepare) Text(pattern io.Writer, actual io.Reader) (err error) {
	var sep lineSepScanner
	scn := bufio.NewScanner(actual)
	scn.Split(sep.ScanLines)
	for scn.Scan() {
		line := p.Redactions.Redact(scn.Text())
		if _, err = io.WriteString(pattern, line); err != nil {
			return err
		}
		if _, err = pattern.Write(sep); err != nil {
			return err
		}
	}
	return scn.Err()
}
