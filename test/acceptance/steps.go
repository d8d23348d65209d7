package acceptance

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/roach88/hgx/internal/cli"
	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/hypergraph"
)

// TestContext holds state between steps
type TestContext struct {
	dir string // per-scenario working directory

	// CLI run state
	lastCLIStdout   string
	lastCLIStderr   string
	lastCLIExitCode int
}

func (tc *TestContext) setUp(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
	dir, err := os.MkdirTemp("", "hgx-acceptance-*")
	if err != nil {
		return ctx, err
	}
	tc.dir = dir
	return ctx, nil
}

func (tc *TestContext) tearDown(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
	if tc.dir != "" {
		_ = os.RemoveAll(tc.dir)
	}
	return ctx, err
}

// path resolves name inside the scenario directory.
func (tc *TestContext) path(name string) string {
	return filepath.Join(tc.dir, name)
}

// hypergraphFileWithEdges writes a file from a table with a "members"
// column (comma-separated node ids) and an optional "weight" column.
// Ids that parse as integers are written as integers.
func (tc *TestContext) hypergraphFileWithEdges(name string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("edge table needs a header and at least one row")
	}
	header := table.Rows[0].Cells
	weightCol := -1
	for i, c := range header {
		if c.Value == "weight" {
			weightCol = i
		}
	}

	var intEdges [][]int
	var strEdges [][]string
	var weights []float64
	allInts := true
	for _, row := range table.Rows[1:] {
		var ints []int
		var strs []string
		for _, m := range strings.Split(row.Cells[0].Value, ",") {
			m = strings.TrimSpace(m)
			strs = append(strs, m)
			v, err := strconv.Atoi(m)
			if err != nil {
				allInts = false
			}
			ints = append(ints, v)
		}
		intEdges = append(intEdges, ints)
		strEdges = append(strEdges, strs)
		if weightCol >= 0 {
			w, err := strconv.ParseFloat(row.Cells[weightCol].Value, 64)
			if err != nil {
				return fmt.Errorf("bad weight %q: %w", row.Cells[weightCol].Value, err)
			}
			weights = append(weights, w)
		}
	}

	weighted := weightCol >= 0
	if allInts {
		h, err := hypergraph.New(intEdges, weighted, weights, hypergraph.WithMetrics(false))
		if err != nil {
			return err
		}
		return codec.WriteFile(tc.path(name), codec.FromHypergraph(h))
	}
	h, err := hypergraph.New(strEdges, weighted, weights, hypergraph.WithMetrics(false))
	if err != nil {
		return err
	}
	return codec.WriteFile(tc.path(name), codec.FromHypergraph(h))
}

func (tc *TestContext) fileWithContent(name string, content *godog.DocString) error {
	return os.WriteFile(tc.path(name), []byte(content.Content), 0o644)
}

// runCLICommand runs an hgx command line in-process. Arguments are
// split on whitespace; "{dir}" expands to the scenario directory.
func (tc *TestContext) runCLICommand(cmdLine string) error {
	parts := strings.Fields(strings.ReplaceAll(cmdLine, "{dir}", tc.dir))
	if len(parts) == 0 || parts[0] != "hgx" {
		return fmt.Errorf("expected an hgx command, got %q", cmdLine)
	}

	var stdout, stderr bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(parts[1:])

	err := root.Execute()
	tc.lastCLIStdout = stdout.String()
	tc.lastCLIStderr = stderr.String()
	tc.lastCLIExitCode = cli.ExitSuccess
	if err != nil {
		tc.lastCLIExitCode = cli.GetExitCode(err)
		tc.lastCLIStderr += err.Error()
	}
	return nil
}

func (tc *TestContext) checkCommandSucceeded() error {
	if tc.lastCLIExitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d; stdout: %s stderr: %s", tc.lastCLIExitCode, tc.lastCLIStdout, tc.lastCLIStderr)
	}
	return nil
}

func (tc *TestContext) checkCommandFailedWithExitCode(code int) error {
	if tc.lastCLIExitCode != code {
		return fmt.Errorf("expected exit code %d, got %d; stderr: %s", code, tc.lastCLIExitCode, tc.lastCLIStderr)
	}
	return nil
}

func (tc *TestContext) outputShouldContain(text string) error {
	combined := tc.lastCLIStdout + tc.lastCLIStderr
	if !strings.Contains(combined, text) {
		return fmt.Errorf("output did not contain %q; stdout: %s stderr: %s", text, tc.lastCLIStdout, tc.lastCLIStderr)
	}
	return nil
}

func (tc *TestContext) outputShouldBe(expected *godog.DocString) error {
	want := strings.TrimSpace(expected.Content)
	got := strings.TrimSpace(tc.lastCLIStdout)
	if got != want {
		return fmt.Errorf("output mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func (tc *TestContext) fileShouldHave(name string, nodes, edges int) error {
	doc, err := codec.ReadFile[int](tc.path(name))
	if err != nil {
		return err
	}
	h, err := doc.Build(hypergraph.WithMetrics(false))
	if err != nil {
		return err
	}
	if h.NumNodes() != nodes || h.NumEdges() != edges {
		return fmt.Errorf("%s has %d nodes and %d edges, want %d and %d", name, h.NumNodes(), h.NumEdges(), nodes, edges)
	}
	return nil
}

func (tc *TestContext) filesShouldBeIdentical(a, b string) error {
	da, err := os.ReadFile(tc.path(a))
	if err != nil {
		return err
	}
	db, err := os.ReadFile(tc.path(b))
	if err != nil {
		return err
	}
	if !bytes.Equal(da, db) {
		return fmt.Errorf("%s and %s differ", a, b)
	}
	return nil
}
