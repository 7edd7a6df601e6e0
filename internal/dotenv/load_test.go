package dotenv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// Later files override earlier ones when applied in order.
func TestLoader_OverrideOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeEnv(t, dir, ".env", "K=first\nONLY_A=a\n")
	b := writeEnv(t, dir, ".env.local", "K=second\n")

	env := MapEnv{"UNTOUCHED": "keep"}
	res, err := Loader{}.LoadInto(env, a, b)
	if err != nil {
		t.Fatalf("LoadInto error: %v", err)
	}
	if env["K"] != "second" {
		t.Fatalf("K=%q, want second", env["K"])
	}
	if env["ONLY_A"] != "a" || env["UNTOUCHED"] != "keep" {
		t.Fatalf("unexpected env state: %v", env)
	}
	want := Result{
		{Key: "K", Value: "first", Source: a, Line: 1},
		{Key: "ONLY_A", Value: "a", Source: a, Line: 2},
		{Key: "K", Value: "second", Source: b, Line: 1},
	}
	if !reflect.DeepEqual(res, want) {
		t.Fatalf("result = %+v, want %+v", res, want)
	}
	if got := res.Keys(); !reflect.DeepEqual(got, []string{"K", "ONLY_A"}) {
		t.Fatalf("Keys() = %v", got)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeEnv(t, dir, ".env", "A=1\n")
	missing := filepath.Join(dir, ".env.local")

	res, err := Loader{}.Load(a, missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if len(res) != 1 || res[0].Key != "A" {
		t.Fatalf("pairs read before the failure should be returned, got %+v", res)
	}

	res, err = Loader{MissingOK: true}.Load(missing, a)
	if err != nil {
		t.Fatalf("MissingOK load error: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 pair, got %+v", res)
	}
}

func TestLoader_FailureAppliesNothing(t *testing.T) {
	dir := t.TempDir()
	a := writeEnv(t, dir, ".env", "A=1\n")
	env := MapEnv{}
	if _, err := (Loader{}).LoadInto(env, a, filepath.Join(dir, "nope")); err == nil {
		t.Fatal("expected error")
	}
	if len(env) != 0 {
		t.Fatalf("env should be untouched on failure, got %v", env)
	}
}

func TestLoader_SkipsBlankPathsAndUsesReader(t *testing.T) {
	files := map[string]string{
		"base":  "A=1\nB=2\n",
		"local": "B=3\n",
	}
	var order []string
	l := Loader{
		Options: ParseOptions{SingleQuotes: true},
		Read: func(p string) (string, error) {
			order = append(order, p)
			return files[p], nil
		},
	}
	res, err := l.Load("base", "  ", "", "local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"base", "local"}) {
		t.Fatalf("read order = %v", order)
	}
	if got := res.Map(); !reflect.DeepEqual(got, map[string]string{"A": "1", "B": "3"}) {
		t.Fatalf("Map() = %v", got)
	}
}

func TestLoader_ReadErrorIsTerminal(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	l := Loader{MissingOK: true, Read: func(string) (string, error) {
		calls++
		return "", boom
	}}
	if _, err := l.Load("a", "b"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected load to stop after first failure, calls=%d", calls)
	}
}

func TestLoader_LoadIntoOSEnv(t *testing.T) {
	t.Setenv("ENVLOAD_TEST_K", "")
	dir := t.TempDir()
	a := writeEnv(t, dir, ".env", "ENVLOAD_TEST_K=\"from file\"\n")
	if _, err := (Loader{MissingOK: true}).LoadInto(OSEnv{}, a, filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("LoadInto error: %v", err)
	}
	if got := os.Getenv("ENVLOAD_TEST_K"); got != "from file" {
		t.Fatalf("ENVLOAD_TEST_K=%q, want %q", got, "from file")
	}
}

// "-" reads standard input in its place in the order.
func TestLoader_Stdin(t *testing.T) {
	dir := t.TempDir()
	a := writeEnv(t, dir, ".env", "K=file\nA=1\n")
	l := Loader{Stdin: strings.NewReader("# piped\nK = \"stdin\"\n")}
	res, err := l.Load(a, StdinPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := res.Map(); !reflect.DeepEqual(got, map[string]string{"K": "stdin", "A": "1"}) {
		t.Fatalf("Map() = %v", got)
	}
	last := res[len(res)-1]
	if last.Source != StdinPath || last.Line != 2 {
		t.Fatalf("stdin pair = %+v, want Source=- Line=2", last)
	}
}
