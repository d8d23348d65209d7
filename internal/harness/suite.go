package harness

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScenarioResult holds the result of one scenario file in a suite.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"` // "match", "updated" or "" when there is no golden file
	Errors []string `json:"errors,omitempty"`
}

// SuiteResult summarizes a suite run.
type SuiteResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// SuiteOptions configures RunSuite.
type SuiteOptions struct {
	// Update rewrites golden files instead of comparing against them.
	Update bool

	// Options are passed to every Run.
	Options []Option
}

// RunSuite loads and runs every scenario file. A scenario passes when
// its run passes and, if a golden file exists next to it (see
// GoldenPath), the snapshot matches. Load and execution failures count
// as failed scenarios rather than aborting the suite.
func RunSuite(files []string, opts SuiteOptions) *SuiteResult {
	suite := &SuiteResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, file := range files {
		sr := runFile(file, opts)
		if sr.Pass {
			suite.Passed++
		} else {
			suite.Failed++
		}
		suite.Scenarios = append(suite.Scenarios, sr)
	}
	return suite
}

func runFile(file string, opts SuiteOptions) ScenarioResult {
	sr := ScenarioResult{Name: filepath.Base(file), Path: file}

	scenario, err := LoadScenario(file)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("failed to load scenario: %v", err)}
		return sr
	}
	sr.Name = scenario.Name

	result, err := Run(scenario, opts.Options...)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return sr
	}
	sr.Errors = result.Errors

	goldenPath := GoldenPath(file)
	switch {
	case opts.Update:
		if err := WriteGolden(goldenPath, scenario.Name, result); err != nil {
			sr.Errors = append(sr.Errors, err.Error())
			return sr
		}
		sr.Golden = "updated"
	default:
		if _, err := os.Stat(goldenPath); os.IsNotExist(err) {
			break
		}
		match, err := CompareGolden(goldenPath, scenario.Name, result)
		if err != nil {
			sr.Errors = append(sr.Errors, fmt.Sprintf("golden comparison failed: %v", err))
			return sr
		}
		if !match {
			sr.Errors = append(sr.Errors, "snapshot does not match golden file (run with --update to regenerate)")
			return sr
		}
		sr.Golden = "match"
	}

	sr.Pass = result.Pass
	return sr
}
