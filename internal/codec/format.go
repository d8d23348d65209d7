package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/roach88/hgx/internal/ident"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatCUE     Format = "cue"
)

// ValidFormats lists every format accepted by ParseFormat.
var ValidFormats = []Format{FormatJSON, FormatYAML, FormatMsgpack, FormatCUE}

var (
	// ErrUnknownFormat is returned for unrecognized format names or extensions.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrReadOnlyFormat is returned when encoding to a format that is only readable.
	ErrReadOnlyFormat = errors.New("codec: format is read-only")

	// ErrNonFiniteWeight is returned when encoding a NaN or infinite
	// weight to JSON, which has no representation for them. YAML and
	// msgpack carry such weights unchanged.
	ErrNonFiniteWeight = errors.New("codec: weight is not finite")
)

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "cue":
		return FormatCUE, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes doc to w in format f.
func Encode[N ident.ID](w io.Writer, f Format, doc *Document[N]) error {
	switch f {
	case FormatJSON:
		if err := checkFiniteWeights(doc); err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	case FormatCUE:
		return fmt.Errorf("%w: %s", ErrReadOnlyFormat, f)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// checkFiniteWeights reports the first edge whose weight JSON cannot encode.
func checkFiniteWeights[N ident.ID](doc *Document[N]) error {
	for _, e := range doc.Edges {
		if e.Weight == nil {
			continue
		}
		if w := *e.Weight; math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: edge %s has weight %v", ErrNonFiniteWeight, ident.KeyOf(e.Members), w)
		}
	}
	return nil
}

// Decode reads a document in format f from r. JSON and YAML reject
// unknown fields.
func Decode[N ident.ID](r io.Reader, f Format) (*Document[N], error) {
	var doc Document[N]
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	case FormatCUE:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return DecodeCUE[N](data, "")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return &doc, nil
}

// ReadFile decodes the document at path, detecting the format from the
// extension.
func ReadFile[N ident.ID](path string) (*Document[N], error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if f == FormatCUE {
		return DecodeCUE[N](data, path)
	}
	doc, err := Decode[N](bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile encodes doc to path, detecting the format from the extension.
func WriteFile[N ident.ID](path string, doc *Document[N]) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
