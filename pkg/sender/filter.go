package sender

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const maxLineSize = 1024 * 1024

var sendingSizeRegex = regexp.MustCompile(`Sending.*kB file`)

// Rule matches an output line of wormhole send that tx drops because the
// banner already shows the same information.
type Rule struct {
	Name  string
	Match func(content string) bool
}

func containsRule(name, substr string) Rule {
	return Rule{Name: name, Match: func(content string) bool {
		return strings.Contains(content, substr)
	}}
}

// DefaultRules are the suppression rules for wormhole send output.
var DefaultRules = []Rule{
	{Name: "file-size", Match: sendingSizeRegex.MatchString},
	{Name: "blank", Match: func(content string) bool { return content == "" }},
	containsRule("code", "Wormhole code is"),
	containsRule("hint", "On the other computer"),
	containsRule("receive-command", "wormhole receive"),
}

// Filter relays wormhole output line by line, dropping lines matched by any
// of its rules.
type Filter struct {
	Rules []Rule
}

// NewFilter returns a Filter with DefaultRules.
func NewFilter() *Filter {
	return &Filter{Rules: DefaultRules}
}

// Match returns the name of the first rule matching line, if any. The line
// terminator is ignored.
func (f *Filter) Match(line string) (string, bool) {
	content := strings.TrimRight(line, "\r\n")
	for _, rule := range f.Rules {
		if rule.Match(content) {
			return rule.Name, true
		}
	}
	return "", false
}

// Relay copies r to w one line at a time as lines arrive, keeping their
// original terminators. It returns when r reaches EOF.
func (f *Filter) Relay(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineSize)
	scanner.Split(scanLinesKeepEnding)

	for scanner.Scan() {
		line := scanner.Text()
		if rule, ok := f.Match(line); ok {
			logrus.Debugf("suppressed %s line: %q", rule, line)
			continue
		}
		if _, err := io.WriteString(w, line); err != nil {
			return xerrors.Errorf("failed to write output: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return xerrors.Errorf("failed to read output: %w", err)
	}
	return nil
}

// scanLinesKeepEnding is a bufio.SplitFunc that splits on "\n", "\r\n" or a
// lone "\r" and keeps the terminator in the token. Progress bars redraw with
// "\r", so those updates are relayed as soon as they arrive.
func scanLinesKeepEnding(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i+1], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i+2], nil
			}
			return i + 1, data[:i+1], nil
		}
		if atEOF {
			return i + 1, data[:i+1], nil
		}
		// a trailing "\r" may be the first half of "\r\n"
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
