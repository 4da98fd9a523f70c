package intent

import (
	"strconv"
	"strings"
)

// Sub-pattern matching every count token the grammar accepts: plain digits,
// English number words, and Chinese numerals up to 九十九.
const numToken = `(?:\d+|one|two|three|four|five|six|seven|eight|nine|ten|an?|[一二两三四五六七八九十]+)`

var englishNumbers = map[string]int{
	"a": 1, "an": 1,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var englishOrdinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

var chineseDigits = map[rune]int{
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// ParseCount normalizes a matched count token to an integer. Every regex in
// the grammar funnels its capture group through here, so digits, English
// words and Chinese numerals all behave identically.
func ParseCount(token string) (int, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n, n > 0
	}
	if n, ok := englishNumbers[token]; ok {
		return n, true
	}
	if n, ok := englishOrdinals[token]; ok {
		return n, true
	}
	return parseChineseNumeral(token)
}

// parseChineseNumeral handles 一..九, 两, 十, and compound tens such as
// 十三, 二十, 二十五.
func parseChineseNumeral(s string) (int, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0, false
	}

	tenIdx := -1
	for i, r := range runes {
		if r == '十' {
			if tenIdx != -1 {
				return 0, false
			}
			tenIdx = i
		}
	}

	if tenIdx == -1 {
		if len(runes) != 1 {
			return 0, false
		}
		n, ok := chineseDigits[runes[0]]
		return n, ok
	}

	tens := 1
	if tenIdx > 0 {
		if tenIdx != 1 {
			return 0, false
		}
		n, ok := chineseDigits[runes[0]]
		if !ok {
			return 0, false
		}
		tens = n
	}

	units := 0
	if tenIdx < len(runes)-1 {
		if len(runes)-1-tenIdx != 1 {
			return 0, false
		}
		n, ok := chineseDigits[runes[tenIdx+1]]
		if !ok {
			return 0, false
		}
		units = n
	}

	return tens*10 + units, true
}
