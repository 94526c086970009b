package normst

import (
	"bufio"
	"bytes"
	"strings"
)

// SplitLines splits text into its lines. Each line keeps its terminator
// ("\n" or "\r\n"), only a final unterminated line has none. Joining the
// result reproduces text exactly. The empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	res := make([]string, 0, strings.Count(text, "\n")+1)
	scn := bufio.NewScanner(strings.NewReader(text))
	scn.Buffer(nil, len(text)+1)
	scn.Split(scanTerminatedLines)
	for scn.Scan() {
		res = append(res, scn.Text())
	}
	return res
}

// scanTerminatedLines is bufio.ScanLines without dropping the line
// terminator.
func scanTerminatedLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// lineSepScanner splits lines like bufio.ScanLines and remembers the
// separator of the most recent line.
type lineSepScanner []byte

func (lsc *lineSepScanner) ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	advance, token, err = scanTerminatedLines(data, atEOF)
	if token == nil {
		return advance, nil, err
	}
	body := len(lineBody(string(token)))
	*lsc = token[body:]
	return advance, token[:body], err
}

// lineBody returns line without its terminator.
func lineBody(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
