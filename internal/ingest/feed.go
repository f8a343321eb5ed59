package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
)

var (
	ErrInputNotFound  = errors.New("input not found")
	ErrMalformedInput = errors.New("malformed input")
)

// LoadFeed reads the feed file at path. A missing file reports
// ErrInputNotFound; anything that is not a valid feed reports
// ErrMalformedInput.
func LoadFeed(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}

		return nil, fmt.Errorf("opening feed: %w", err)
	}
	defer f.Close()

	return DecodeFeed(f)
}

// DecodeFeed parses one JSON feed document. Accepted forms are a top-level
// array of records, an object wrapping them in an invoices array, or a
// single vendor-grouped record.
func DecodeFeed(r io.Reader) ([]Document, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	dec := json.NewDecoder(utf8r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after feed document", ErrMalformedInput)
	}

	switch v := root.(type) {
	case []any:
		return toDocuments(v)
	case map[string]any:
		doc := Document(v)
		if DetectShape(doc) == ShapeVendorGrouped {
			return []Document{doc}, nil
		}

		if records, ok := v["invoices"].([]any); ok {
			return toDocuments(records)
		}
	}

	return nil, fmt.Errorf("%w: expected an array of records or an object with an invoices array", ErrMalformedInput)
}

func toDocuments(records []any) ([]Document, error) {
	docs := make([]Document, 0, len(records))

	for i, r := range records {
		m, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrMalformedInput, i)
		}

		docs = append(docs, Document(m))
	}

	return docs, nil
}
