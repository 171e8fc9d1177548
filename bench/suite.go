// Package bench runs evaluation suites: collections of evaluation
// requests scored through a single engine with aggregated results. The
// engine stays stateless; all cross-case bookkeeping lives here.
package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/ragcheck"
)

// Case is a single suite entry: one evaluation request plus an optional
// name for reporting.
type Case struct {
	Name    string           `json:"name,omitempty"`
	Request ragcheck.Request `json:"request"`
}

// Suite is a named collection of cases.
type Suite struct {
	Name  string `json:"name"`
	Cases []Case `json:"cases"`
}

// LoadSuite reads a suite from a .json or .xlsx file, dispatching on the
// extension.
func LoadSuite(path string) (*Suite, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSONSuite(path)
	case ".xlsx", ".xls":
		return loadXLSXSuite(path)
	default:
		return nil, fmt.Errorf("unsupported suite format: %s", path)
	}
}

func loadJSONSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("suite %s has no cases", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &s, nil
}

// loadXLSXSuite reads cases from the first worksheet. Expected columns:
// name | user_query | ai_response | context (|| separates chunks) |
// token_usage (optional) | model (optional). The first row is a header.
func loadXLSXSuite(path string) (*Suite, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening suite: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("suite %s has no worksheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading suite rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("suite %s has no cases", path)
	}

	s := &Suite{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for i, row := range rows[1:] {
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}
		c := Case{
			Name: cell(0),
			Request: ragcheck.Request{
				UserQuery:  cell(1),
				AIResponse: cell(2),
				Model:      cell(5),
			},
		}
		if ctx := cell(3); ctx != "" {
			for _, chunk := range strings.Split(ctx, "||") {
				if chunk = strings.TrimSpace(chunk); chunk != "" {
					c.Request.ContextChunks = append(c.Request.ContextChunks, chunk)
				}
			}
		}
		if raw := cell(4); raw != "" {
			tokens, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("suite %s row %d: bad token_usage %q", path, i+2, raw)
			}
			c.Request.TokenUsage = &tokens
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		s.Cases = append(s.Cases, c)
	}
	return s, nil
}
