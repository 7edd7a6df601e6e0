// Package dotenv parses KEY=VALUE environment files and applies them to an
// environment sink. Files are applied in the order given, so later files
// override earlier ones.
package dotenv

import (
	"bufio"
	"io"
	"strings"
)

// asciiSpace is the set trimmed from keys and values.
const asciiSpace = " \t\r\n\v\f"

// Pair is a single KEY=VALUE assignment read from an env file.
type Pair struct {
	Key   string
	Value string
	// Source is the file the pair was read from; empty for in-memory input.
	Source string
	// Line is the 1-based line number within Source.
	Line int
}

// ParseOptions tunes the line grammar. The zero value is the plain grammar:
// only double quotes are removed from values.
type ParseOptions struct {
	// SingleQuotes also removes one layer of matching single quotes.
	SingleQuotes bool
}

// Parse parses env file text into pairs using the default grammar.
func Parse(text string) []Pair {
	return ParseOptions{}.Parse(text)
}

// Parse splits text on newlines and returns one pair per assignment line, in
// order. Blank lines, comment lines and lines without '=' or without a key are
// skipped without error.
func (o ParseOptions) Parse(text string) []Pair {
	var pairs []Pair
	for i, line := range strings.Split(text, "\n") {
		if p, ok := o.parseLine(line); ok {
			p.Line = i + 1
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// ParseReader parses r line by line. Pairs read before a read error are
// returned together with the error.
func (o ParseOptions) ParseReader(r io.Reader) ([]Pair, error) {
	var pairs []Pair
	br := bufio.NewReader(r)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" || err == nil {
			n++
			if p, ok := o.parseLine(strings.TrimSuffix(line, "\n")); ok {
				p.Line = n
				pairs = append(pairs, p)
			}
		}
		if err == io.EOF {
			return pairs, nil
		}
		if err != nil {
			return pairs, err
		}
	}
}

func (o ParseOptions) parseLine(line string) (Pair, bool) {
	// Comments are cut before looking for '=' so a '#' in a value truncates it.
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	if strings.Trim(line, asciiSpace) == "" {
		return Pair{}, false
	}
	key, value, found := strings.Cut(line, "=")
	if !found {
		return Pair{}, false
	}
	key = strings.Trim(key, asciiSpace)
	if key == "" {
		return Pair{}, false
	}
	value = strings.Trim(value, asciiSpace)
	value = o.unquote(value)
	return Pair{Key: key, Value: value}, true
}

func (o ParseOptions) unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first != last {
		return v
	}
	if first == '"' || (o.SingleQuotes && first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
