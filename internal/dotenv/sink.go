package dotenv

import (
	"fmt"
	"os"
)

// Setter receives applied pairs. Implementations overwrite any previous value
// for the key.
type Setter interface {
	Setenv(key, value string) error
}

// SetterFunc adapts a function to the Setter interface.
type SetterFunc func(key, value string) error

// Setenv calls f(key, value).
func (f SetterFunc) Setenv(key, value string) error { return f(key, value) }

// OSEnv writes to the process environment.
type OSEnv struct{}

// Setenv sets key in the process environment.
func (OSEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

// MapEnv collects values in memory.
type MapEnv map[string]string

// Setenv stores value under key.
func (m MapEnv) Setenv(key, value string) error {
	m[key] = value
	return nil
}

// Apply sets every pair on s in order, so the last pair for a key wins. It
// stops at the first error.
func Apply(s Setter, pairs []Pair) error {
	for _, p := range pairs {
		if err := s.Setenv(p.Key, p.Value); err != nil {
			return fmt.Errorf("set %s: %w", p.Key, err)
		}
	}
	return nil
}
