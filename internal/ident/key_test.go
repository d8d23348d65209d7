package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected Key
	}{
		{"pair", []int{1, 2}, "[1,2]"},
		{"unordered", []int{6, 4, 7}, "[4,6,7]"},
		{"repeated", []int{2, 2, 3}, "[2,3]"},
		{"negative", []int{-1, 10}, "[-1,10]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, _, err := MakeKey(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestMakeKeyOrderIndependent(t *testing.T) {
	a, _, err := MakeKey([]int{4, 3, 5, 6, 8})
	require.NoError(t, err)
	b, _, err := MakeKey([]int{8, 6, 5, 4, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKeyOfStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected Key
	}{
		{"plain", []string{"a", "b"}, `["a","b"]`},
		{"quotes", []string{`say "hi"`, "x"}, `["say \"hi\"","x"]`},
		{"html not escaped", []string{"<a>", "b&c"}, `["<a>","b&c"]`},
		{"unicode preserved", []string{"日本", "a"}, `["a","日本"]`},
		{"comma in id", []string{"a,b", "c"}, `["a,b","c"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, _, err := MakeKey(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestKeyDistinguishesAmbiguousSplits(t *testing.T) {
	a, _, err := MakeKey([]string{"a,b", "c"})
	require.NoError(t, err)
	b, _, err := MakeKey([]string{"a", "b,c"})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestKeyOfUnsigned(t *testing.T) {
	assert.Equal(t, Key("[0,18446744073709551615]"), KeyOf([]uint64{0, 18446744073709551615}))
}
