// Package store reads and writes event documents on the local filesystem.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"event-name-fixer/internal/model"
)

// ErrNotFound is returned by Load when the input path does not exist.
var ErrNotFound = errors.New("file not found")

// ParseError reports input that is not a single valid JSON document.
type ParseError struct {
	Path   string
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v (line %d column %d)", e.Path, e.Err, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and decodes the JSON document at path.
func Load(path string) (model.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Document{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return model.Document{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := Decode(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return model.Document{}, err
	}
	return model.Document{Root: root}, nil
}

// Decode parses data as exactly one UTF-8 JSON value. Numbers are kept as
// json.Number so they are written back unchanged.
func Decode(data []byte) (any, error) {
	if !utf8.Valid(data) {
		offset := invalidUTF8Offset(data)
		return nil, newParseError(data, offset, errors.New("input is not valid UTF-8"))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, newParseError(data, int64(len(data)), errors.New("unexpected end of JSON input"))
		}
		var serr *json.SyntaxError
		if errors.As(err, &serr) {
			return nil, newParseError(data, serr.Offset, serr)
		}
		return nil, newParseError(data, dec.InputOffset(), err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newParseError(data, dec.InputOffset(), errors.New("extra data after top-level value"))
	}
	return root, nil
}

// Encode renders doc with 2-space indentation. Non-ASCII characters and
// HTML-sensitive characters are written verbatim.
func Encode(doc model.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc.Root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes doc to path, replacing any existing content.
func Save(path string, doc model.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func newParseError(data []byte, offset int64, err error) *ParseError {
	line, col := position(data, offset)
	return &ParseError{Offset: offset, Line: line, Column: col, Err: err}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func invalidUTF8Offset(data []byte) int64 {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return int64(i)
		}
		i += size
	}
	return int64(len(data))
}
