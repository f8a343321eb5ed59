// Package encoding normalizes uploaded feed files to UTF-8 before they
// reach a decoder. Extraction tools on Windows hosts still emit
// windows-1252 or UTF-16 exports.
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

type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO8859_9   Charset = "ISO-8859-9"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// chardetNames maps detector results onto the charsets we can decode.
var chardetNames = map[string]Charset{
	"UTF-8":        UTF8,
	"UTF-16LE":     UTF16LE,
	"UTF-16BE":     UTF16BE,
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-9":   ISO8859_9,
}

// Detect sniffs the first bytes of r. The returned reader still yields the
// complete input, BOM included.
//
// Detection order: BOM, valid UTF-8, chardet heuristics, windows-1252.
func Detect(r io.Reader) (*bufio.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if bytes.HasPrefix(buf, bom.prefix) {
			return br, bom.charset, nil
		}
	}

	if utf8.Valid(buf) {
		return br, UTF8, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if cs, ok := chardetNames[result.Charset]; ok {
			return br, cs, nil
		}
	}

	return br, Windows1252, nil
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8 without a
// leading BOM.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br, cs, err := Detect(r)
	if err != nil {
		return nil, err
	}

	return transform.NewReader(br, decoder(cs)), nil
}

func decoder(cs Charset) *encoding.Decoder {
	switch cs {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case Windows1252:
		return charmap.Windows1252.NewDecoder()
	case ISO8859_9:
		return charmap.ISO8859_9.NewDecoder()
	}

	return unicode.UTF8BOM.NewDecoder()
}
