package utils

import (
	"fmt"
	"sort"
	"strings"
)

const tripSchemaExample = `
{
  "title": "string",
  "destination": "string",
  "days": [
    {
      "dayNumber": 1,
      "summary": "string",
      "pois": [
        {"name":"string","type":"sight","address":"string","description":"string","startTime":"09:00","durationMin":90,"note":"optional"}
      ]
    }
  ]
}`

const daySchemaExample = `
{
  "dayNumber": 3,
  "summary": "string",
  "pois": [
    {"name":"string","type":"sight","address":"string","description":"string","startTime":"09:00","durationMin":90,"note":"optional"}
  ]
}`

// BuildTripPrompt writes the whole-trip generation instruction. Exact JSON
// keys, hard day-count constraint, dedup guidance.
func BuildTripPrompt(tc TripContext) string {
	days := tc.DaySpan()

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-day trip to %s, from %s to %s (inclusive). Return **JSON only** matching this schema exactly:\n%s\n\n",
		days, tc.Destination,
		tc.StartDate.Format("2006-01-02"), tc.EndDate.Format("2006-01-02"),
		tripSchemaExample)

	writeTripDetails(&b, tc)

	b.WriteString("Hard constraints:\n")
	fmt.Fprintf(&b, "- Exactly %d objects in \"days\", dayNumber = 1..%d with no gaps.\n", days, days)
	b.WriteString("- 3 to 6 pois per day. startTime is HH:MM, durationMin a positive integer.\n")
	fmt.Fprintf(&b, "- type is one of: %s.\n", poiTypeList())
	b.WriteString("- Never repeat a place, and avoid near-duplicates (same site under a different name).\n")
	b.WriteString("- Keep landmarks inside the same complex on the same day.\n")

	if tc.EditRequest != "" {
		fmt.Fprintf(&b, "\nThe traveler asked for this change: %s\n", tc.EditRequest)
	}
	b.WriteString("\nReturn JSON only. No comments, no markdown.")
	return b.String()
}

// BuildDayPrompt writes the single-day regeneration instruction, anchored on
// the existing itinerary so the new day fits what is already planned.
func BuildDayPrompt(tc TripContext, dayNumber int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Re-plan day %d of a trip to %s (%s to %s). Return **JSON only** for that one day, matching this schema exactly:\n%s\n\n",
		dayNumber, tc.Destination,
		tc.StartDate.Format("2006-01-02"), tc.EndDate.Format("2006-01-02"),
		daySchemaExample)

	writeTripDetails(&b, tc)

	if tc.ExistingSummary != "" {
		fmt.Fprintf(&b, "Current itinerary, for context (do not repeat places planned on other days):\n%s\n\n", tc.ExistingSummary)
	}
	if tc.EditRequest != "" {
		fmt.Fprintf(&b, "The traveler asked for this change: %s\n\n", tc.EditRequest)
	}

	b.WriteString("Hard constraints:\n")
	fmt.Fprintf(&b, "- dayNumber must be %d.\n", dayNumber)
	b.WriteString("- 3 to 6 pois. startTime is HH:MM, durationMin a positive integer.\n")
	fmt.Fprintf(&b, "- type is one of: %s.\n", poiTypeList())
	b.WriteString("- Avoid near-duplicates of places already in the itinerary; keep same-complex landmarks together.\n")
	b.WriteString("\nReturn JSON only. No comments, no markdown.")
	return b.String()
}

func writeTripDetails(b *strings.Builder, tc TripContext) {
	if len(tc.Preferences) > 0 {
		fmt.Fprintf(b, "Traveler preferences: %s\n", strings.Join(tc.Preferences, ", "))
	}
	if tc.Description != "" {
		fmt.Fprintf(b, "Trip description: %s\n", tc.Description)
	}
	if tc.Note != "" {
		fmt.Fprintf(b, "Traveler note: %s\n", tc.Note)
	}
	if len(tc.KnownPlaces) > 0 {
		fmt.Fprintf(b, "Places already known near this destination (reuse the exact same name and address if you include one, never a near-duplicate): %s\n",
			strings.Join(tc.KnownPlaces, "; "))
	}
	b.WriteString("\n")
}

func poiTypeList() string {
	types := make([]string, 0, len(PoiTypes))
	for t := range PoiTypes {
		types = append(types, t)
	}
	// Deterministic order for stable prompts.
	sort.Strings(types)
	return strings.Join(types, ", ")
}
