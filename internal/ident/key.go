package ident

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
)

// Key is the canonical identity of an edge: the JSON array text of its
// sorted, de-duplicated members, e.g. `[1,2,3]` or `["a","b"]`.
type Key string

// String implements fmt.Stringer.
func (k Key) String() string {
	return string(k)
}

// MakeKey canonicalizes members and returns the key together with the
// canonical member list.
func MakeKey[N ID](members []N) (Key, []N, error) {
	sorted, err := Canonical(members)
	if err != nil {
		return "", nil, err
	}
	return KeyOf(sorted), sorted, nil
}

// KeyOf encodes an already canonical member list.
// Use MakeKey when the input order or uniqueness is not guaranteed.
func KeyOf[N ID](sorted []N) Key {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, m := range sorted {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(encodeID(m))
	}
	buf.WriteByte(']')
	return Key(buf.String())
}

// encodeID renders a single identifier. Strings are JSON strings without
// HTML escaping; integers are plain decimal.
func encodeID[N ID](n N) string {
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.String:
		return encodeString(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	default:
		return strconv.FormatUint(v.Uint(), 10)
	}
}

func encodeString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encode only fails for unsupported types; strings always succeed.
	_ = enc.Encode(s)

	// json.Encoder adds a trailing newline
	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return string(out)
}
