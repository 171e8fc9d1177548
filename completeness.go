package ragcheck

import "github.com/brunobiangulo/ragcheck/entity"

// completenessScore checks the response for the entity types the query
// implies (a "when" question expects a date, "how much" expects a
// currency amount, and so on — per the configured trigger map). The score
// is found/expected, and 1.0 when the query implies nothing.
func completenessScore(reg *entity.Registry, triggers map[string]string, query, response string) float64 {
	expected := entity.ExpectedTypes(query, triggers)
	if len(expected) == 0 {
		return 1.0
	}

	found := 0
	for _, typ := range expected {
		if reg.Detect(typ, response) {
			found++
		}
	}
	return float64(found) / float64(len(expected))
}
