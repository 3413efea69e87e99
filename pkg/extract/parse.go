package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"musafir/pkg/itinerary/types"
)

// ParseError means the model's structured output could not be used. Raw
// is always the full text that was received.
type ParseError struct {
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e *ParseError) Error() string { return "structured itinerary: " + e.Reason }

func (e *ParseError) Unwrap() error { return e.Err }

// Result is either an Itinerary (with optional warnings) or a ParseError.
type Result struct {
	Itinerary *types.Itinerary
	Warnings  []string
	Err       *ParseError
}

func (r Result) OK() bool { return r.Err == nil && r.Itinerary != nil }

func failed(raw, reason string, err error) Result {
	return Result{Err: &ParseError{Raw: raw, Reason: reason, Err: err}}
}

var tripKeys = []string{"destination", "dates", "itinerary"}

// Parse recovers the itinerary object from a model response. It accepts
// prose or code fences around the object and a payload that is the trip
// itself rather than {"trip": {...}}. The scan does not stop at the first
// balanced {...} span: when that span is not valid JSON (a brace pair in
// the prose, say), the next one is tried.
func Parse(raw string) Result {
	doc, err := firstObject(raw)
	if err != nil {
		return failed(raw, err.Error(), err)
	}

	tripValue, ok := doc["trip"]
	if !ok {
		if !hasAny(doc, tripKeys) {
			return failed(raw, "no trip object in response", nil)
		}
		tripValue = doc
	}
	if _, isObject := tripValue.(map[string]any); !isObject {
		return failed(raw, fmt.Sprintf("trip: expected object, got %s", jsonKind(tripValue)), nil)
	}

	tripJSON, err := json.Marshal(tripValue)
	if err != nil {
		return failed(raw, "re-encode trip: "+err.Error(), err)
	}
	if result := tripSchema.ValidateJSON(tripJSON); !result.Valid {
		err := fmt.Errorf("%w", result)
		return failed(raw, "schema: "+err.Error(), err)
	}

	var trip types.Trip
	if err := json.Unmarshal(tripJSON, &trip); err != nil {
		return failed(raw, "decode trip: "+err.Error(), err)
	}
	it := &types.Itinerary{Trip: trip}
	return Result{Itinerary: it, Warnings: warnings(it)}
}

// firstObject returns the first balanced span that decodes as a JSON
// object. Later candidates are tried when an earlier one is only a brace
// pair inside prose.
func firstObject(raw string) (map[string]any, error) {
	var firstErr error
	for from := 0; from < len(raw); {
		span, next, ok := nextObject(raw, from)
		if !ok {
			break
		}
		var doc map[string]any
		err := json.Unmarshal([]byte(span), &doc)
		if err == nil {
			return doc, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("malformed JSON: %w", err)
		}
		from = next
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, fmt.Errorf("no balanced JSON object found")
}

func warnings(it *types.Itinerary) []string {
	var out []string
	t := it.Trip
	if strings.TrimSpace(t.Destination) == "" {
		out = append(out, "missing destination")
	}
	if strings.TrimSpace(t.Dates.Start) == "" || strings.TrimSpace(t.Dates.End) == "" {
		out = append(out, "missing trip dates")
	}
	if len(t.Itinerary) == 0 {
		out = append(out, "missing itinerary days")
	}
	for i, d := range t.Itinerary {
		for j, a := range d.Activities {
			if strings.TrimSpace(a.Place) == "" {
				out = append(out, fmt.Sprintf("day %d activity %d: missing place", dayNumber(d, i), j+1))
			}
		}
	}
	return out
}

func dayNumber(d types.Day, index int) int {
	if d.Day > 0 {
		return d.Day
	}
	return index + 1
}

func hasAny(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	}
	return "object"
}
