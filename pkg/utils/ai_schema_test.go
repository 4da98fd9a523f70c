package utils

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDayJSON(dayNumber int) string {
	return fmt.Sprintf(`{
		"dayNumber": %d,
		"summary": "old town on foot",
		"pois": [
			{"name": "City Museum", "type": "museum", "address": "1 Museum Sq", "description": "history", "startTime": "09:00", "durationMin": 90},
			{"name": "Central Market", "type": "market", "address": "5 Market St", "description": "street food", "startTime": "11:00", "durationMin": 60},
			{"name": "River Park", "type": "park", "address": "Riverside", "description": "walk", "startTime": "13:00", "durationMin": 75}
		]
	}`, dayNumber)
}

func validTripJSON(days int) string {
	var b strings.Builder
	b.WriteString(`{"title": "Weekend away", "destination": "Lisbon", "days": [`)
	for i := 1; i <= days; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		b.WriteString(validDayJSON(i))
	}
	b.WriteString("]}")
	return b.String()
}

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, StripCodeFence(fenced))

	chatty := "Here is your itinerary:\n{\"a\": 1}\nLet me know!"
	assert.Equal(t, `{"a": 1}`, StripCodeFence(chatty))

	assert.Equal(t, `{"a": 1}`, StripCodeFence(`{"a": 1}`))
}

func TestParseTripItineraryValid(t *testing.T) {
	it, err := ParseTripItinerary(validTripJSON(2), 2)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", it.Destination)
	require.Len(t, it.Days, 2)
	assert.Equal(t, 1, it.Days[0].DayNumber)
	assert.Len(t, it.Days[0].Pois, 3)
}

func TestParseTripItineraryFenced(t *testing.T) {
	raw := "```json\n" + validTripJSON(1) + "\n```"
	it, err := ParseTripItinerary(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "Weekend away", it.Title)
}

func TestParseTripItineraryNotJSON(t *testing.T) {
	_, err := ParseTripItinerary("I'm sorry, I can't plan that trip.", 2)
	require.Error(t, err)

	var sve *SchemaValidationError
	assert.False(t, errors.As(err, &sve), "garbage text is a decode error, not a schema violation")
}

func TestParseTripItineraryDayCountMismatch(t *testing.T) {
	_, err := ParseTripItinerary(validTripJSON(2), 3)
	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)
	require.NotEmpty(t, sve.Violations)
	assert.Equal(t, "days", sve.Violations[0].Path)
}

func TestParseTripItineraryNonContiguousDays(t *testing.T) {
	raw := `{"title": "t", "destination": "d", "days": [` + validDayJSON(1) + "," + validDayJSON(3) + `]}`
	_, err := ParseTripItinerary(raw, 2)
	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "days[1].dayNumber", sve.Violations[0].Path)
}

func TestParseDayItineraryValid(t *testing.T) {
	d, err := ParseDayItinerary(validDayJSON(4), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, d.DayNumber)
	assert.Len(t, d.Pois, 3)
}

func TestParseDayItineraryWrongDayNumber(t *testing.T) {
	_, err := ParseDayItinerary(validDayJSON(2), 4)
	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "dayNumber", sve.Violations[0].Path)
}

func TestParseDayItineraryViolations(t *testing.T) {
	raw := `{
		"dayNumber": 1,
		"summary": "broken day",
		"pois": [
			{"name": "", "type": "museum", "address": "1 Museum Sq", "startTime": "09:00", "durationMin": 90},
			{"name": "Central Market", "type": "disco", "address": "5 Market St", "startTime": "25:00", "durationMin": 60},
			{"name": "River Park", "type": "park", "address": "", "startTime": "13:00", "durationMin": 0}
		]
	}`
	_, err := ParseDayItinerary(raw, 1)
	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)

	paths := make(map[string]bool)
	for _, v := range sve.Violations {
		paths[v.Path] = true
	}
	assert.True(t, paths["pois[0].name"])
	assert.True(t, paths["pois[1].type"])
	assert.True(t, paths["pois[1].startTime"])
	assert.True(t, paths["pois[2].address"])
	assert.True(t, paths["pois[2].durationMin"])
}

func TestParseDayItineraryPoiCountBounds(t *testing.T) {
	tooFew := `{"dayNumber": 1, "summary": "s", "pois": [
		{"name": "A", "type": "sight", "address": "a", "startTime": "09:00", "durationMin": 60}
	]}`
	_, err := ParseDayItinerary(tooFew, 1)
	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "pois", sve.Violations[0].Path)
}
