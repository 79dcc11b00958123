package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"judgebox/internal/model"
)

// junitPayload mirrors the JSON document the in-workspace TestRunner
// harness writes to stdout — the canonical Result shape minus the
// infrastructure fields the Executor fills in itself.
type junitPayload struct {
	State          model.State           `json:"state"`
	TestsRun       int                   `json:"tests_run"`
	Passed         int                   `json:"passed"`
	Failed         int                   `json:"failed"`
	FailureDetails []model.FailureDetail `json:"failure_details"`
}

// JUnitParser trusts the embedded TestRunner harness: it locates the
// JSON document pre-emptively written to stdout and adopts its fields
// directly, sidestepping free-form regex parsing entirely.
type JUnitParser struct{}

// NewJUnitParser returns a parser bound to the TestRunner harness's JSON output.
func NewJUnitParser() *JUnitParser {
	return &JUnitParser{}
}

func (p *JUnitParser) Parse(stdout, stderr string) (*model.Result, error) {
	first := strings.IndexByte(stdout, '{')
	last := strings.LastIndexByte(stdout, '}')
	if first < 0 || last < 0 || last < first {
		return nil, fmt.Errorf("no JSON object found in TestRunner output")
	}

	var payload junitPayload
	if err := json.Unmarshal([]byte(stdout[first:last+1]), &payload); err != nil {
		return nil, fmt.Errorf("malformed TestRunner JSON: %w", err)
	}

	details := payload.FailureDetails
	if details == nil {
		details = make([]model.FailureDetail, 0)
	}

	return &model.Result{
		TestsRun:       payload.TestsRun,
		Passed:         payload.Passed,
		Failed:         payload.Failed,
		FailureDetails: details,
	}, nil
}
