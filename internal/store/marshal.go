package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// ID kinds recorded per graph so that a load with the wrong node type
// fails loudly instead of decoding garbage.
const (
	kindInt    = "int"
	kindString = "string"
)

func idKind[N ident.ID]() string {
	var zero N
	if reflect.TypeOf(zero).Kind() == reflect.String {
		return kindString
	}
	return kindInt
}

// marshalJSON encodes v with HTML escaping disabled and no trailing newline.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// marshalID converts a node id to its JSON TEXT form (1 or "a").
func marshalID[N ident.ID](n N) (string, error) {
	s, err := marshalJSON(n)
	if err != nil {
		return "", fmt.Errorf("marshal node id: %w", err)
	}
	return s, nil
}

func unmarshalID[N ident.ID](data string) (N, error) {
	var n N
	if err := json.Unmarshal([]byte(data), &n); err != nil {
		return n, fmt.Errorf("unmarshal node id %q: %w", data, err)
	}
	return n, nil
}

// marshalMeta converts metadata to JSON TEXT. Empty metadata is NULL.
// Map keys come out sorted, so equal metadata always stores equal text.
func marshalMeta(meta hypergraph.Meta) (sql.NullString, error) {
	if len(meta) == 0 {
		return sql.NullString{}, nil
	}
	s, err := marshalJSON(meta)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal meta: %w", err)
	}
	return sql.NullString{String: s, Valid: true}, nil
}

func unmarshalMeta(data sql.NullString) (hypergraph.Meta, error) {
	if !data.Valid || data.String == "" {
		return nil, nil
	}
	var meta hypergraph.Meta
	if err := json.Unmarshal([]byte(data.String), &meta); err != nil {
		return nil, fmt.Errorf("unmarshal meta: %w", err)
	}
	return meta, nil
}

// unmarshalMembers decodes an edge key back into its member list.
func unmarshalMembers[N ident.ID](key string) ([]N, error) {
	var members []N
	if err := json.Unmarshal([]byte(key), &members); err != nil {
		return nil, fmt.Errorf("unmarshal edge key %q: %w", key, err)
	}
	return members, nil
}
