package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run against one hypergraph.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// IDs selects the node id type: "int" (default) or "string".
	IDs string `yaml:"ids,omitempty"`

	// Steps run in order against the current hypergraph, which starts
	// empty and unweighted.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the final hypergraph.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op"`

	Weighted bool             `yaml:"weighted,omitempty"`
	Edges    [][]any          `yaml:"edges,omitempty"`
	Weights  []float64        `yaml:"weights,omitempty"`
	Metas    []map[string]any `yaml:"metas,omitempty"`
	Edge     []any            `yaml:"edge,omitempty"`
	Weight   *float64         `yaml:"weight,omitempty"`
	Node     any              `yaml:"node,omitempty"`
	Nodes    []any            `yaml:"nodes,omitempty"`
	Meta     map[string]any   `yaml:"meta,omitempty"`

	KeepEdges bool  `yaml:"keep_edges,omitempty"`
	Orders    []int `yaml:"orders,omitempty"`
	KeepNodes bool  `yaml:"keep_nodes,omitempty"`

	// ExpectError is the error code the step must fail with.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion checks one property of the final hypergraph.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Node is the subject of degree assertions.
	Node any `yaml:"node,omitempty"`

	// Edge is the subject of order and weight assertions.
	Edge []any `yaml:"edge,omitempty"`

	// Expect is the expected value; its shape depends on Type.
	Expect any `yaml:"expect"`
}

// Step operations.
const (
	OpNew              = "new"
	OpAddNode          = "add_node"
	OpAddNodes         = "add_nodes"
	OpAddEdges         = "add_edges"
	OpSetWeight        = "set_weight"
	OpRemoveEdge       = "remove_edge"
	OpRemoveEdges      = "remove_edges"
	OpRemoveNode       = "remove_node"
	OpRemoveNodes      = "remove_nodes"
	OpSubgraphByOrders = "subgraph_by_orders"
)

// Assertion types.
const (
	AssertNodes    = "nodes"
	AssertEdges    = "edges"
	AssertNumNodes = "num_nodes"
	AssertNumEdges = "num_edges"
	AssertDegree   = "degree"
	AssertOrder    = "order"
	AssertWeight   = "weight"
)

// ID kinds.
const (
	IDsInt    = "int"
	IDsString = "string"
)

var errorCodes = []string{"DIMENSION_MISMATCH", "INVALID_EDGE", "NOT_FOUND", "INVALID_ARGUMENT"}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir whose base
// name (without extension) matches filter, sorted by path. An empty
// filter matches everything.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := filepath.Base(path)
			matched, err := filepath.Match(filter, name[:len(name)-len(ext)])
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	switch s.IDs {
	case "", IDsInt, IDsString:
	default:
		return fmt.Errorf("ids must be %q or %q, got %q", IDsInt, IDsString, s.IDs)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateStep checks the fields each operation needs. Argument values
// are checked later, when they are converted to node ids.
func validateStep(index int, st *Step) error {
	if st.ExpectError != "" && !slices.Contains(errorCodes, st.ExpectError) {
		return fmt.Errorf("steps[%d]: unknown error code %q", index, st.ExpectError)
	}

	switch st.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpNew, OpAddEdges, OpRemoveEdges, OpAddNodes, OpRemoveNodes, OpSubgraphByOrders:
	case OpAddNode, OpRemoveNode:
		if st.Node == nil {
			return fmt.Errorf("steps[%d]: node is required for %s", index, st.Op)
		}
	case OpRemoveEdge:
		if st.Edge == nil {
			return fmt.Errorf("steps[%d]: edge is required for %s", index, st.Op)
		}
	case OpSetWeight:
		if st.Edge == nil || st.Weight == nil {
			return fmt.Errorf("steps[%d]: edge and weight are required for %s", index, st.Op)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Expect == nil {
		return fmt.Errorf("assertions[%d]: expect is required", index)
	}

	switch a.Type {
	case AssertNodes, AssertEdges, AssertNumNodes, AssertNumEdges:
	case AssertDegree:
		if a.Node == nil {
			return fmt.Errorf("assertions[%d]: node is required for degree", index)
		}
	case AssertOrder, AssertWeight:
		if a.Edge == nil {
			return fmt.Errorf("assertions[%d]: edge is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
