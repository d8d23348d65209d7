package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// LoadError is returned when a hypergraph file cannot be loaded.
type LoadError struct {
	Code    string // Error code (E004, E005, etc.)
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadGraph reads the hypergraph file at path. The format follows the
// file extension.
func loadGraph[N ident.ID](opts *RootOptions, path string) (*hypergraph.Hypergraph[N], error) {
	doc, err := codec.ReadFile[N](path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s", path), Err: err}
	}
	h, err := doc.Build(graphOptions(opts)...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("building %s", path), Err: err}
	}
	opts.logger().Debug("loaded hypergraph", "path", path, "nodes", h.NumNodes(), "edges", h.NumEdges())
	return h, nil
}

// writeGraph writes h to path in the format of its extension.
func writeGraph[N ident.ID](opts *RootOptions, path string, h *hypergraph.Hypergraph[N]) error {
	if err := codec.WriteFile(path, codec.FromHypergraph(h)); err != nil {
		return err
	}
	opts.logger().Debug("wrote hypergraph", "path", path, "nodes", h.NumNodes(), "edges", h.NumEdges())
	return nil
}

// graphOptions are the hypergraph options for graphs built by commands.
// The CLI exports no metrics, so instrumentation is off.
func graphOptions(opts *RootOptions) []hypergraph.Option {
	return []hypergraph.Option{
		hypergraph.WithLogger(opts.logger()),
		hypergraph.WithMetrics(false),
	}
}

// failLoad reports a loadGraph error.
func failLoad(f *OutputFormatter, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return f.Fail(le.Code, ExitCommandError, le.Message, le.Err)
	}
	return f.Fail(ErrCodeGeneric, ExitCommandError, "loading hypergraph", err)
}

// byIDs runs intFn or stringFn depending on the --ids flag.
func byIDs(opts *RootOptions, intFn, stringFn func() error) error {
	if opts.stringIDs() {
		return stringFn()
	}
	return intFn()
}

// parseID converts a command-line value to a node id.
func parseID[N ident.ID](s string) (N, error) {
	var out N
	switch p := any(&out).(type) {
	case *int:
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return out, fmt.Errorf("invalid node id %q: %w", s, err)
		}
		*p = v
	case *string:
		*p = s
	default:
		return out, fmt.Errorf("unsupported node id type %T", out)
	}
	return out, nil
}

// parseIDs converts a comma-separated list of node ids.
func parseIDs[N ident.ID](list string) ([]N, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	out := make([]N, 0, len(parts))
	for _, p := range parts {
		id, err := parseID[N](strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// dirExists reports whether path exists.
func dirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
