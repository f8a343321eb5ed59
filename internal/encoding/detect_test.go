package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := `[{"name":"Café Société","amount":"12.50"}]`
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"invoices":[]}`)...)
	assert.Equal(t, `{"invoices":[]}`, readAll(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// {"name":"Müller"} with ü = 0xFC.
	input := []byte{'{', '"', 'n', 'a', 'm', 'e', '"', ':', '"', 'M', 0xFC, 'l', 'l', 'e', 'r', '"', '}'}
	assert.Equal(t, `{"name":"Müller"}`, readAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// BOM + "[1]" in UTF-16 little endian.
	input := []byte{0xFF, 0xFE, '[', 0x00, '1', 0x00, ']', 0x00}
	assert.Equal(t, "[1]", readAll(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", readAll(t, nil))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  encoding.Charset
	}{
		{name: "PlainASCII", input: []byte(`[]`), want: encoding.UTF8},
		{name: "UTF8BOM", input: []byte{0xEF, 0xBB, 0xBF, '[', ']'}, want: encoding.UTF8},
		{name: "UTF16BE", input: []byte{0xFE, 0xFF, 0x00, '['}, want: encoding.UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
