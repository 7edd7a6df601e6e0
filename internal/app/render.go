package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/envload/internal/dotenv"
)

// Render formats the effective environment of res. The dotenv, json and yaml
// formats sort keys; export keeps the order in which keys first appeared.
func Render(format string, res dotenv.Result) (string, error) {
	env := res.Map()
	switch format {
	case FormatDotenv, "":
		return renderDotenv(env)
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return buf.String(), nil
	case FormatYAML:
		if len(env) == 0 {
			return "", nil
		}
		b, err := yaml.Marshal(env)
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		return string(b), nil
	case FormatExport:
		var sb strings.Builder
		for _, k := range res.Keys() {
			fmt.Fprintf(&sb, "export %s=%s\n", k, shellQuote(env[k]))
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// renderDotenv writes env with godotenv. Marshal prints anything Atoi accepts
// as a bare integer, which turns "007" into 7, so those values are quoted here
// unless they are already in canonical form.
func renderDotenv(env map[string]string) (string, error) {
	plain := make(map[string]string, len(env))
	var lines []string
	for k, v := range env {
		if n, err := strconv.Atoi(v); err == nil && strconv.Itoa(n) != v {
			lines = append(lines, fmt.Sprintf("%s=%q", k, v))
			continue
		}
		plain[k] = v
	}
	if len(plain) > 0 {
		s, err := godotenv.Marshal(plain)
		if err != nil {
			return "", fmt.Errorf("render dotenv: %w", err)
		}
		lines = append(lines, strings.Split(s, "\n")...)
	}
	if len(lines) == 0 {
		return "", nil
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n", nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
