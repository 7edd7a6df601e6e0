package dotenv

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Result is the ordered list of pairs from one load, in file-then-line order.
// A key may appear more than once; the last occurrence is the effective one.
type Result []Pair

// Map collapses r into its effective values.
func (r Result) Map() map[string]string {
	m := make(MapEnv, len(r))
	_ = Apply(m, r)
	return m
}

// Keys returns each key once, in order of first appearance.
func (r Result) Keys() []string {
	seen := make(map[string]struct{}, len(r))
	keys := make([]string, 0, len(r))
	for _, p := range r {
		if _, ok := seen[p.Key]; ok {
			continue
		}
		seen[p.Key] = struct{}{}
		keys = append(keys, p.Key)
	}
	return keys
}

// Loader reads env files in order and parses them.
type Loader struct {
	// MissingOK skips files that do not exist instead of failing.
	MissingOK bool
	Options   ParseOptions
	// Read overrides how file contents are obtained. Defaults to ReadFile.
	Read func(path string) (string, error)
	// Stdin is parsed for the path "-". Defaults to os.Stdin.
	Stdin io.Reader
}

// StdinPath names standard input in a path list.
const StdinPath = "-"

// Load reads and parses paths in order, most general first. Blank paths are
// ignored. On error the pairs gathered from earlier files are returned with it.
func (l Loader) Load(paths ...string) (Result, error) {
	read := l.Read
	if read == nil {
		read = ReadFile
	}
	var res Result
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if path == StdinPath {
			pairs, err := l.readStdin()
			res = append(res, pairs...)
			if err != nil {
				return res, err
			}
			continue
		}
		text, err := read(path)
		if err != nil {
			if l.MissingOK && errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("path", path).Msg("env file missing; skipped")
				continue
			}
			return res, err
		}
		pairs := l.Options.Parse(text)
		for i := range pairs {
			pairs[i].Source = path
		}
		log.Debug().Str("path", path).Int("pairs", len(pairs)).Msg("env file parsed")
		res = append(res, pairs...)
	}
	return res, nil
}

// LoadInto loads paths and applies the pairs to s. Nothing is applied when
// loading fails.
func (l Loader) LoadInto(s Setter, paths ...string) (Result, error) {
	res, err := l.Load(paths...)
	if err != nil {
		return res, err
	}
	return res, Apply(s, res)
}

func (l Loader) readStdin() ([]Pair, error) {
	in := l.Stdin
	if in == nil {
		in = os.Stdin
	}
	pairs, err := l.Options.ParseReader(in)
	for i := range pairs {
		pairs[i].Source = StdinPath
	}
	if err != nil {
		return pairs, fmt.Errorf("read env from stdin: %w", err)
	}
	log.Debug().Int("pairs", len(pairs)).Msg("env read from stdin")
	return pairs, nil
}
