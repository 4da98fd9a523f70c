package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParsedIntent is the structured reading of the latest chat message against
// the trip's current date window. It is recomputed on every render and never
// cached across messages.
type ParsedIntent struct {
	NextStartDate  time.Time
	NextEndDate    time.Time
	HasChange      bool
	ReferencedDays []int
	Warnings       []string
}

// Each category holds an ordered list of bilingual regex variants; the first
// variant whose capture group normalizes to a count wins for that category.
// Categories are evaluated independently and are additive.
var (
	absoluteStartPatterns = compileAll(
		`(?i)(?:start(?:s|ing)?|begin(?:s|ning)?)\s+(?:on|from|at)\s+(\d{4}-\d{1,2}-\d{1,2})`,
		`(?i)(?:depart(?:ing)?|leave|leaving)\s+(?:on\s+)?(\d{4}-\d{1,2}-\d{1,2})`,
		`(?i)from\s+(\d{4}-\d{1,2}-\d{1,2})`,
		`从\s*(\d{4}-\d{1,2}-\d{1,2})\s*(?:号|日)?\s*(?:开始|出发)?`,
		`(\d{4}-\d{1,2}-\d{1,2})\s*(?:号|日)?\s*(?:开始|出发)`,
	)

	extendPatterns = compileAll(
		`(?i)\badd(?:ing)?\s+(`+numToken+`)\s+(?:more\s+|extra\s+)?days?\b`,
		`(?i)\bextend(?:ed|ing)?(?:\s+(?:the\s+)?trip)?\s+(?:by\s+)?(`+numToken+`)\s+days?\b`,
		`(?i)\bstay\s+(?:for\s+)?(`+numToken+`)\s+(?:more|extra)\s+days?\b`,
		`(?i)\b(`+numToken+`)\s+(?:more|extra|additional)\s+days?\b`,
		`多(?:玩|住|待|呆)?(`+numToken+`)天`,
		`(?:增加|加|延长)(`+numToken+`)天`,
	)

	shortenPatterns = compileAll(
		`(?i)\bshorten(?:ed|ing)?(?:\s+(?:the\s+)?trip)?\s+(?:by\s+)?(`+numToken+`)\s+days?\b`,
		`(?i)\b(?:remove|cut|drop)\s+(`+numToken+`)\s+days?\b`,
		`(?i)\b(`+numToken+`)\s+(?:fewer|less)\s+days?\b`,
		`少(?:玩|住|待|呆)?(`+numToken+`)天`,
		`(?:减少|减|缩短)(`+numToken+`)天`,
	)

	startEarlierPatterns = compileAll(
		`(?i)\bstart\s+(`+numToken+`)\s+days?\s+earlier\b`,
		`(?i)\bmove\s+(?:the\s+)?start\s+(?:up|earlier)\s+(?:by\s+)?(`+numToken+`)\s+days?\b`,
		`(?i)\b(`+numToken+`)\s+days?\s+earlier\b`,
		`(?:提前|提早)(`+numToken+`)天`,
	)

	startLaterPatterns = compileAll(
		`(?i)\bstart\s+(`+numToken+`)\s+days?\s+later\b`,
		`(?i)\b(?:postpone|delay|push\s+back)(?:\s+(?:the\s+)?(?:trip|start))?\s+(?:by\s+)?(`+numToken+`)\s+days?\b`,
		`(?i)\b(`+numToken+`)\s+days?\s+later\b`,
		`(?:推迟|延后|往后推|往后延)(`+numToken+`)天`,
	)

	// Day references are scanned on text with the delta phrases already
	// removed, so "加2天" never doubles as a mention of day 2. Patterns are
	// applied in order and each match is blanked before the next pattern runs,
	// keeping 第三天 from re-matching as a bare 三天.
	dayRefPatterns = compileAll(
		`(?i)\bday\s+(`+numToken+`)\b`,
		`(?i)\b(\d+)(?:st|nd|rd|th)\s+day\b`,
		`(?i)\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\s+day\b`,
		`第\s*(`+numToken+`)\s*天`,
		`([0-9一二两三四五六七八九十]+)天`,
	)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Parse reads the latest user message against the trip's current inclusive
// date window. Pure and deterministic; it never mutates anything and never
// fails — ambiguity is reported through Warnings with the dates reset to the
// originals.
func Parse(text string, currentStart, currentEnd time.Time) ParsedIntent {
	out := ParsedIntent{
		NextStartDate: currentStart,
		NextEndDate:   currentEnd,
	}

	lower := strings.ToLower(text)
	// Copy used for day-reference scanning; delta matches get blanked out of
	// it as they are consumed.
	scan := lower

	absToken, absLoc, absFound := firstMatch(absoluteStartPatterns, lower)
	if absFound {
		scan = blank(scan, absLoc)
	}

	extendBy, scan := consumeDelta(extendPatterns, lower, scan)
	shortenBy, scan := consumeDelta(shortenPatterns, lower, scan)
	earlierBy, scan := consumeDelta(startEarlierPatterns, lower, scan)
	laterBy, scan := consumeDelta(startLaterPatterns, lower, scan)

	out.ReferencedDays = findDayReferences(scan)

	nextStart := currentStart
	if absFound {
		parsed, err := time.Parse(dateLayout, normalizeDate(absToken))
		if err != nil {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("could not understand the start date %q; keeping the current dates", absToken))
			return out
		}
		nextStart = parsed
	}
	nextStart = nextStart.AddDate(0, 0, laterBy-earlierBy)
	nextEnd := currentEnd.AddDate(0, 0, extendBy-shortenBy)

	// Referenced days are checked against the shifted window, and a mention
	// past the end implies an extension, never a reduction.
	if len(out.ReferencedDays) > 0 && !nextEnd.Before(nextStart) {
		maxRef := out.ReferencedDays[len(out.ReferencedDays)-1]
		if span := daySpan(nextStart, nextEnd); maxRef > span {
			nextEnd = nextStart.AddDate(0, 0, maxRef-1)
		}
	}

	if nextEnd.Before(nextStart) {
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"the requested change would end the trip (%s) before it starts (%s); keeping the current dates",
			nextEnd.Format(dateLayout), nextStart.Format(dateLayout)))
		return out
	}

	out.NextStartDate = nextStart
	out.NextEndDate = nextEnd
	out.HasChange = !nextStart.Equal(currentStart) || !nextEnd.Equal(currentEnd)
	return out
}

// DayCount is the inclusive span of the intent's resolved window.
func (p ParsedIntent) DayCount() int {
	return daySpan(p.NextStartDate, p.NextEndDate)
}

func daySpan(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// firstMatch returns the capture of the first pattern that matches at all.
func firstMatch(patterns []*regexp.Regexp, text string) (string, []int, bool) {
	for _, re := range patterns {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			return text[loc[2]:loc[3]], loc[:2], true
		}
	}
	return "", nil, false
}

// consumeDelta resolves one delta category: the first variant whose token
// normalizes wins, and its span is blanked from the day-reference scan text.
func consumeDelta(patterns []*regexp.Regexp, text, scan string) (int, string) {
	for _, re := range patterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		n, ok := ParseCount(text[loc[2]:loc[3]])
		if !ok {
			continue
		}
		return n, blank(scan, loc[:2])
	}
	return 0, scan
}

func findDayReferences(scan string) []int {
	seen := make(map[int]bool)
	var days []int
	for _, re := range dayRefPatterns {
		for {
			loc := re.FindStringSubmatchIndex(scan)
			if loc == nil {
				break
			}
			token := scan[loc[2]:loc[3]]
			scan = blank(scan, loc[:2])
			n, ok := ParseCount(token)
			if !ok || n < 1 || seen[n] {
				continue
			}
			seen[n] = true
			days = append(days, n)
		}
	}
	sort.Ints(days)
	return days
}

// blank replaces the [start,end) span with spaces so offsets stay stable.
func blank(s string, loc []int) string {
	return s[:loc[0]] + strings.Repeat(" ", loc[1]-loc[0]) + s[loc[1]:]
}

// normalizeDate pads single-digit month/day so 2026-3-1 parses too.
func normalizeDate(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	for i := 1; i < 3; i++ {
		if len(parts[i]) == 1 {
			parts[i] = "0" + parts[i]
		}
	}
	return strings.Join(parts, "-")
}
