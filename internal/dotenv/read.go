package dotenv

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadFile returns the contents of path as text. A leading UTF-8 byte-order
// mark is removed and UTF-16 files with a BOM are transcoded to UTF-8. All
// other content is returned byte for byte, including invalid UTF-8.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read env file %s: %w", path, err)
	}
	text, err := decode(b)
	if err != nil {
		return "", fmt.Errorf("decode env file %s: %w", path, err)
	}
	return text, nil
}

func decode(b []byte) (string, error) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return string(b[len(bomUTF8):]), nil
	case bytes.HasPrefix(b, bomUTF16LE), bytes.HasPrefix(b, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return string(b), nil
}
