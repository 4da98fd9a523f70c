package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		token string
		want  int
		ok    bool
	}{
		{"2", 2, true},
		{"10", 10, true},
		{"0", 0, false},
		{"one", 1, true},
		{"a", 1, true},
		{"an", 1, true},
		{"Three", 3, true},
		{"second", 2, true},
		{"tenth", 10, true},
		{"一", 1, true},
		{"两", 2, true},
		{"三", 3, true},
		{"十", 10, true},
		{"十三", 13, true},
		{"二十", 20, true},
		{"二十五", 25, true},
		{"九十九", 99, true},
		{"十十", 0, false},
		{"", 0, false},
		{"banana", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, ok := ParseCount(tc.token)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseExtend(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-02")

	cases := []struct {
		name    string
		text    string
		wantEnd string
	}{
		{"english add", "can we add 2 days to the trip?", "2026-03-04"},
		{"english extend by", "please extend the trip by three days", "2026-03-05"},
		{"english more days", "I want 2 more days in the city", "2026-03-04"},
		{"chinese jia", "帮我加2天", "2026-03-04"},
		{"chinese duo wan", "想多玩两天", "2026-03-04"},
		{"chinese yanchang", "行程延长三天", "2026-03-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.text, start, end)
			require.Empty(t, got.Warnings)
			assert.True(t, got.HasChange)
			assert.Equal(t, date("2026-03-01"), got.NextStartDate)
			assert.Equal(t, date(tc.wantEnd), got.NextEndDate)
		})
	}
}

func TestParseShorten(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-05")

	got := Parse("let's shorten the trip by 2 days", start, end)
	require.Empty(t, got.Warnings)
	assert.Equal(t, date("2026-03-03"), got.NextEndDate)

	got = Parse("减少一天吧", start, end)
	require.Empty(t, got.Warnings)
	assert.Equal(t, date("2026-03-04"), got.NextEndDate)
}

func TestParseStartShift(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-03")

	got := Parse("提前一天出发", start, end)
	require.Empty(t, got.Warnings)
	assert.True(t, got.HasChange)
	assert.Equal(t, date("2026-02-28"), got.NextStartDate)
	assert.Equal(t, date("2026-03-03"), got.NextEndDate)

	got = Parse("start 2 days later please", start, end)
	require.Empty(t, got.Warnings)
	assert.Equal(t, date("2026-03-03"), got.NextStartDate)

	got = Parse("推迟两天", start, end)
	require.Empty(t, got.Warnings)
	assert.Equal(t, date("2026-03-03"), got.NextStartDate)
}

func TestParseAbsoluteStart(t *testing.T) {
	start, end := date("2026-03-05"), date("2026-03-08")

	got := Parse("let's start on 2026-03-02 instead", start, end)
	require.Empty(t, got.Warnings)
	assert.True(t, got.HasChange)
	assert.Equal(t, date("2026-03-02"), got.NextStartDate)
	// End is untouched by an absolute start alone.
	assert.Equal(t, date("2026-03-08"), got.NextEndDate)
}

func TestParseAbsoluteStartPastEndResets(t *testing.T) {
	// An absolute start past the current end is an invalid window and must
	// reset with a warning rather than guess.
	start, end := date("2026-03-01"), date("2026-03-03")

	got := Parse("start from 2026-04-10", start, end)
	require.NotEmpty(t, got.Warnings)
	assert.False(t, got.HasChange)
	assert.Equal(t, start, got.NextStartDate)
	assert.Equal(t, end, got.NextEndDate)
}

func TestParseAbsoluteStartChinese(t *testing.T) {
	start, end := date("2026-03-05"), date("2026-03-08")

	got := Parse("从2026-03-01出发", start, end)
	require.Empty(t, got.Warnings)
	assert.Equal(t, date("2026-03-01"), got.NextStartDate)
	assert.Equal(t, date("2026-03-08"), got.NextEndDate)

	// Single-digit month and day still parse.
	got = Parse("from 2026-3-1", start, end)
	require.Empty(t, got.Warnings)
	assert.Equal(t, date("2026-03-01"), got.NextStartDate)
}

func TestParseInvalidWindowResets(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-02")

	got := Parse("remove 5 days", start, end)
	require.NotEmpty(t, got.Warnings)
	assert.False(t, got.HasChange)
	assert.Equal(t, start, got.NextStartDate)
	assert.Equal(t, end, got.NextEndDate)
}

func TestParseDayReferences(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-05")

	got := Parse("make day 2 more relaxed and day 4 food focused", start, end)
	assert.Equal(t, []int{2, 4}, got.ReferencedDays)
	assert.False(t, got.HasChange)

	got = Parse("第三天安排博物馆", start, end)
	assert.Equal(t, []int{3}, got.ReferencedDays)

	got = Parse("change the 2nd day and the fifth day", start, end)
	assert.Equal(t, []int{2, 5}, got.ReferencedDays)
}

func TestParseDeltaNotCountedAsDayReference(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-05")

	// The consumed "加2天" must not surface as a mention of day 2.
	got := Parse("帮我加2天", start, end)
	assert.Empty(t, got.ReferencedDays)
	assert.Equal(t, date("2026-03-07"), got.NextEndDate)

	got = Parse("add 2 days and make day 3 easier", start, end)
	assert.Equal(t, []int{3}, got.ReferencedDays)
	assert.Equal(t, date("2026-03-07"), got.NextEndDate)
}

func TestParseImplicitExtension(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-03")

	// Mentioning a day past the window extends it to cover that day.
	got := Parse("on day 5 I want to visit the old town", start, end)
	require.Empty(t, got.Warnings)
	assert.True(t, got.HasChange)
	assert.Equal(t, date("2026-03-05"), got.NextEndDate)
	assert.Equal(t, []int{5}, got.ReferencedDays)

	// In-window references never shrink anything.
	got = Parse("day 2 should be quieter", start, end)
	assert.False(t, got.HasChange)
	assert.Equal(t, date("2026-03-03"), got.NextEndDate)
}

func TestParseCombined(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-03")

	got := Parse("start one day later, add 2 days, and put museums on day 4", start, end)
	require.Empty(t, got.Warnings)
	assert.True(t, got.HasChange)
	assert.Equal(t, date("2026-03-02"), got.NextStartDate)
	assert.Equal(t, date("2026-03-05"), got.NextEndDate)
	assert.Equal(t, []int{4}, got.ReferencedDays)
}

func TestParseNoChange(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-03")

	got := Parse("what's the weather like there?", start, end)
	assert.False(t, got.HasChange)
	assert.Empty(t, got.ReferencedDays)
	assert.Empty(t, got.Warnings)
	assert.Equal(t, start, got.NextStartDate)
	assert.Equal(t, end, got.NextEndDate)
}

func TestParseDeterministic(t *testing.T) {
	start, end := date("2026-03-01"), date("2026-03-03")
	text := "加两天，第四天去海边"

	first := Parse(text, start, end)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Parse(text, start, end))
	}
}

func TestDayCount(t *testing.T) {
	got := Parse("", date("2026-03-01"), date("2026-03-03"))
	assert.Equal(t, 3, got.DayCount())

	got = Parse("", date("2026-03-01"), date("2026-03-01"))
	assert.Equal(t, 1, got.DayCount())
}
