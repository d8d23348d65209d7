package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/hypergraph"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]int{"nodes": 8}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"nodes": float64(8)}, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeReadFailed, "decode failed", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E004", resp.Error.Code)
	assert.Equal(t, "decode failed", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Hypergraph with 3 nodes")
	require.NoError(t, err)
	assert.Equal(t, "Hypergraph with 3 nodes\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	details := map[string]string{"index": "2"}
	err := formatter.Error("E102", "edge needs two members", details)
	require.NoError(t, err)
	assert.Equal(t, "Error [E102]: edge needs two members\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"index": "2"}
	err := formatter.Error("E102", "edge needs two members", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E102]")
	assert.Contains(t, buf.String(), "Details: map[index:2]")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Loaded %s", "net.json")

			assert.Empty(t, buf.String())
			if tt.wantLog {
				assert.Equal(t, "Loaded net.json\n", errBuf.String())
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestOutputFormatter_GetErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	formatter := &OutputFormatter{Writer: out}
	assert.Same(t, out, formatter.GetErrWriter())

	errOut := &bytes.Buffer{}
	formatter.ErrWriter = errOut
	assert.Same(t, errOut, formatter.GetErrWriter())
}

func TestOutputFormatter_FailPlainError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail(ErrCodeWriteFailed, ExitCommandError, "writing out.json", errors.New("disk full"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "Error [E007]: writing out.json: disk full\n", buf.String())
}

func TestOutputFormatter_FailHypergraphError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	_, herr := hypergraph.New([][]int{{1, 1}}, false, nil, hypergraph.WithMetrics(false))
	require.Error(t, herr)

	err := formatter.Fail(ErrCodeGeneric, ExitCommandError, "building net.json", herr)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, hypergraph.ErrInvalidEdge)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidEdge, resp.Error.Code)
}

func TestHypergraphErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
		ok   bool
	}{
		{hypergraph.ErrDimensionMismatch, ErrCodeDimension, true},
		{hypergraph.ErrInvalidEdge, ErrCodeInvalidEdge, true},
		{fmt.Errorf("walk: %w", hypergraph.ErrNotFound), ErrCodeMissing, true},
		{hypergraph.ErrInvalidArgument, ErrCodeInvalidArg, true},
		{errors.New("other"), "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		code, ok := hypergraphErrorCode(tt.err)
		assert.Equal(t, tt.ok, ok, "%v", tt.err)
		assert.Equal(t, tt.want, code, "%v", tt.err)
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapExitError(ExitCommandError, "reading net.json", cause)
	assert.Equal(t, "reading net.json: no such file", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", err)))

	plain := NewExitError(ExitFailure, "2 scenario(s) failed")
	assert.Equal(t, "2 scenario(s) failed", plain.Error())
	assert.Nil(t, plain.Unwrap())

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("anything")))
}

func TestCLIError_JSON(t *testing.T) {
	cliErr := CLIError{
		Code:    "E101",
		Message: "dimension mismatch",
		Details: []string{"edges: 3", "weights: 2"},
	}

	data, err := json.Marshal(cliErr)
	require.NoError(t, err)

	var decoded CLIError
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "E101", decoded.Code)
	assert.Equal(t, "dimension mismatch", decoded.Message)
}
