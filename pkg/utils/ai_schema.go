package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"tripflow/internal/models/response_models"
)

// POI types the schema accepts from the provider.
var PoiTypes = map[string]bool{
	"sight":         true,
	"museum":        true,
	"park":          true,
	"temple":        true,
	"restaurant":    true,
	"cafe":          true,
	"market":        true,
	"shopping":      true,
	"entertainment": true,
	"viewpoint":     true,
	"beach":         true,
	"landmark":      true,
	"other":         true,
}

const (
	minPoisPerDay = 3
	maxPoisPerDay = 6
)

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// StripCodeFence removes optional ```json fencing and trims the payload to
// the outermost JSON object. Models wrap output in markdown no matter how
// firmly the prompt forbids it.
func StripCodeFence(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```JSON", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

// ParseTripItinerary decodes and validates a whole-trip generation result.
// wantDays is the inclusive day-span of the trip's date range; a result with
// any other shape is rejected rather than silently accepted.
func ParseTripItinerary(raw string, wantDays int) (*response_models.GeneratedItinerary, error) {
	cleaned := StripCodeFence(raw)

	var it response_models.GeneratedItinerary
	if err := json.Unmarshal([]byte(cleaned), &it); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	var violations []FieldViolation
	if it.Destination == "" {
		violations = append(violations, FieldViolation{Path: "destination", Message: "required"})
	}
	if len(it.Days) != wantDays {
		violations = append(violations, FieldViolation{
			Path:    "days",
			Message: fmt.Sprintf("expected %d day objects, got %d", wantDays, len(it.Days)),
		})
	}
	for i, d := range it.Days {
		prefix := fmt.Sprintf("days[%d]", i)
		if d.DayNumber != i+1 {
			violations = append(violations, FieldViolation{
				Path:    prefix + ".dayNumber",
				Message: fmt.Sprintf("expected %d, got %d (day numbers must be contiguous from 1)", i+1, d.DayNumber),
			})
		}
		violations = append(violations, validateGeneratedDay(prefix, d)...)
	}

	if len(violations) > 0 {
		return nil, &SchemaValidationError{Violations: violations}
	}
	return &it, nil
}

// ParseDayItinerary decodes and validates a single-day generation result.
func ParseDayItinerary(raw string, wantDay int) (*response_models.GeneratedDay, error) {
	cleaned := StripCodeFence(raw)

	var d response_models.GeneratedDay
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	var violations []FieldViolation
	if d.DayNumber != wantDay {
		violations = append(violations, FieldViolation{
			Path:    "dayNumber",
			Message: fmt.Sprintf("expected %d, got %d", wantDay, d.DayNumber),
		})
	}
	violations = append(violations, validateGeneratedDay("", d)...)

	if len(violations) > 0 {
		return nil, &SchemaValidationError{Violations: violations}
	}
	return &d, nil
}

func validateGeneratedDay(prefix string, d response_models.GeneratedDay) []FieldViolation {
	key := func(field string) string {
		if prefix == "" {
			return field
		}
		return prefix + "." + field
	}

	var violations []FieldViolation
	if n := len(d.Pois); n < minPoisPerDay || n > maxPoisPerDay {
		violations = append(violations, FieldViolation{
			Path:    key("pois"),
			Message: fmt.Sprintf("day must have %d-%d pois, got %d", minPoisPerDay, maxPoisPerDay, n),
		})
	}
	for i, p := range d.Pois {
		pp := fmt.Sprintf("%s[%d]", key("pois"), i)
		if strings.TrimSpace(p.Name) == "" {
			violations = append(violations, FieldViolation{Path: pp + ".name", Message: "required"})
		}
		if strings.TrimSpace(p.Address) == "" {
			violations = append(violations, FieldViolation{Path: pp + ".address", Message: "required"})
		}
		if !PoiTypes[p.Type] {
			violations = append(violations, FieldViolation{
				Path:    pp + ".type",
				Message: fmt.Sprintf("%q is not an accepted poi type", p.Type),
			})
		}
		if !hhmmRe.MatchString(p.StartTime) {
			violations = append(violations, FieldViolation{
				Path:    pp + ".startTime",
				Message: fmt.Sprintf("%q is not HH:MM", p.StartTime),
			})
		}
		if p.DurationMin <= 0 {
			violations = append(violations, FieldViolation{
				Path:    pp + ".durationMin",
				Message: "must be a positive integer",
			})
		}
	}
	return violations
}
