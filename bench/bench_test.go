package bench

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/ragcheck"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	eval, err := ragcheck.New(ragcheck.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return NewRunner(eval)
}

func intp(v int) *int { return &v }

func TestLoadJSONSuite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smoke.json")
	content := `{
		"cases": [
			{"name": "hours", "request": {
				"user_query": "when does the clinic open",
				"ai_response": "The clinic opens at 9am.",
				"context_chunks": ["The clinic opens at 9am."]
			}}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	if s.Name != "smoke" {
		t.Errorf("suite name = %q, want filename default", s.Name)
	}
	if len(s.Cases) != 1 || s.Cases[0].Name != "hours" {
		t.Errorf("cases = %+v", s.Cases)
	}
	if len(s.Cases[0].Request.ContextChunks) != 1 {
		t.Errorf("context chunks = %v", s.Cases[0].Request.ContextChunks)
	}
}

func TestLoadSuiteRejectsEmptyAndUnknown(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"name":"x","cases":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSuite(empty); err == nil {
		t.Error("expected error for suite with no cases")
	}
	if _, err := LoadSuite("suite.csv"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadXLSXSuite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"name", "user_query", "ai_response", "context", "token_usage", "model"},
		{"hours", "when does the clinic open", "The clinic opens at 9am.",
			"The clinic opens at 9am. || Consultations cost $50.", "120", "default"},
		{"", "describe the services", "Checkups and vaccinations.", "", "", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	if len(s.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(s.Cases))
	}
	first := s.Cases[0]
	if len(first.Request.ContextChunks) != 2 {
		t.Errorf("context chunks = %v, want 2 split on ||", first.Request.ContextChunks)
	}
	if first.Request.TokenUsage == nil || *first.Request.TokenUsage != 120 {
		t.Errorf("token_usage = %v, want 120", first.Request.TokenUsage)
	}
	if s.Cases[1].Name != "case-2" {
		t.Errorf("unnamed case = %q, want generated name", s.Cases[1].Name)
	}
	if s.Cases[1].Request.TokenUsage != nil {
		t.Error("blank token_usage should stay nil")
	}
}

func TestRunnerAggregation(t *testing.T) {
	r := newTestRunner(t)
	suite := &Suite{
		Name: "aggregation",
		Cases: []Case{
			{Name: "supported", Request: ragcheck.Request{
				UserQuery:     "describe the clinic services",
				AIResponse:    "We describe the clinic services: checkups and vaccinations.",
				ContextChunks: []string{"We describe the clinic services: checkups and vaccinations."},
				TokenUsage:    intp(1000),
			}},
			{Name: "fabricated", Request: ragcheck.Request{
				UserQuery:     "describe the clinic services",
				AIResponse:    "Teleportation booths are available on request.",
				ContextChunks: []string{"We describe the clinic services: checkups and vaccinations."},
				TokenUsage:    intp(500),
			}},
			{Name: "broken", Request: ragcheck.Request{
				UserQuery:  "describe the clinic services",
				AIResponse: "",
			}},
		},
	}

	report, err := r.Run(context.Background(), suite)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Total != 3 {
		t.Errorf("total = %d, want 3", report.Total)
	}
	if report.Errors != 1 {
		t.Errorf("errors = %d, want 1", report.Errors)
	}
	if report.Passed != 1 {
		t.Errorf("passed = %d, want 1", report.Passed)
	}
	if report.Failed != 1 {
		t.Errorf("failed = %d, want 1", report.Failed)
	}
	if len(report.Results) != 3 {
		t.Fatalf("results = %d, want one per case", len(report.Results))
	}
	if report.Results[2].Error == "" || report.Results[2].Report != nil {
		t.Error("failed case should carry an error and no report")
	}

	// Averages cover only the two scored cases: hallucination 1.0 and 0.0.
	if got := report.Metrics.AvgHallucination; got != 0.5 {
		t.Errorf("avg hallucination = %v, want 0.5", got)
	}

	// Both scored cases carried token usage, so total cost is known:
	// 1000 and 500 tokens at the default 0.002/1k rate.
	if !report.CostKnown {
		t.Fatal("cost should be known when every scored case has token usage")
	}
	if report.TotalCost == nil || math.Abs(*report.TotalCost-0.003) > 1e-12 {
		t.Errorf("total cost = %v, want 0.003", report.TotalCost)
	}
}

func TestRunnerCostUnknown(t *testing.T) {
	r := newTestRunner(t)
	suite := &Suite{
		Name: "no-usage",
		Cases: []Case{
			{Name: "untracked", Request: ragcheck.Request{
				UserQuery:     "describe the clinic services",
				AIResponse:    "We describe the clinic services: checkups.",
				ContextChunks: []string{"We describe the clinic services: checkups."},
			}},
		},
	}

	report, err := r.Run(context.Background(), suite)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.CostKnown {
		t.Error("cost must be unknown when a scored case lacks token usage")
	}
	if report.TotalCost != nil {
		t.Errorf("total cost = %v, want nil", report.TotalCost)
	}
}

func TestRunnerNilSuite(t *testing.T) {
	r := newTestRunner(t)
	if _, err := r.Run(context.Background(), nil); err == nil {
		t.Error("expected error for nil suite")
	}
}
