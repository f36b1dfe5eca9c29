// Package encoding normalizes uploaded bank-statement files to UTF-8.
// Statement exports arrive in whatever the bank portal produces: UTF-8 with
// or without BOM, UTF-16 from spreadsheet round-trips, Windows-1252, or
// Windows-1256 for Arabic account names.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewStatementReader wraps an uploaded statement in a reader that yields
// UTF-8, detecting the source encoding from the first bytes.
//
// Detection order: BOM, UTF-8 validation, chardet heuristics, then a
// Windows-1252 fallback.
func NewStatementReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek statement head: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(head, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(head, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if dec := detectDecoder(head); dec != nil {
		return transform.NewReader(br, dec.NewDecoder()), nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// detectDecoder runs chardet over the sampled head and maps the charsets
// seen in practice onto decoders. Returns nil when the guess is unusable.
func detectDecoder(head []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "UTF-8":
		// Peek can split a multibyte sequence; trust the detector.
		return unicode.UTF8
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "windows-1256":
		return charmap.Windows1256
	case "ISO-8859-6":
		return charmap.ISO8859_6
	default:
		return nil
	}
}
