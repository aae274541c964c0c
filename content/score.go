package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)
	hashtagPattern     = regexp.MustCompile(`(?:^|\s)#[\p{L}\p{N}_]+`)
)

// Improvement tips, in the order they are considered.
const (
	TipSpecifics = "Add more specific examples or data points"
	TipQuestion  = "Include a question to encourage engagement"
	TipExpand    = "Expand with more details or insights"
	TipEmoji     = "Consider adding relevant emojis for visual appeal"
	TipHashtags  = "Include 3-5 relevant hashtags to increase reach"

	maxImprovements = 3
)

var emojiRanges = [][2]rune{
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1F1E0, 0x1F1FF}, // regional indicators
	{0x2600, 0x27BF},   // misc symbols and dingbats
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// HasEmoji reports whether s contains at least one emoji.
func HasEmoji(s string) bool {
	return strings.IndexFunc(s, isEmoji) >= 0
}

// HasHashtag reports whether s contains a #tag token.
func HasHashtag(s string) bool {
	return hashtagPattern.MatchString(s)
}

// StripEmoji removes emoji and their joiners. Check marks become bullets so lists
// keep their markers.
func StripEmoji(s string) string {
	s = strings.ReplaceAll(s, "✅", "•")
	s = strings.Map(func(r rune) rune {
		if isEmoji(r) || r == 0xFE0F || r == 0x200D {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func hasListMarkers(s string) bool {
	if strings.Contains(s, "•") || strings.Contains(s, "✅") {
		return true
	}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "1.") {
			return true
		}
	}
	return false
}

// CharacterCount counts runes, so an emoji counts as one character.
func CharacterCount(s string) int {
	return utf8.RuneCountInString(s)
}

// Score rates text from 0 to 100. It is a pure function of its arguments.
func Score(text string, flags Flags) int {
	score := 70
	if flags.Length.Band().Contains(CharacterCount(text)) {
		score += 10
	}
	if strings.Contains(text, "?") {
		score += 5
	}
	if hasListMarkers(text) {
		score += 5
	}
	if flags.IncludeEmojis && HasEmoji(text) {
		score += 5
	}
	if flags.IncludeHashtags && HasHashtag(text) {
		score += 5
	}
	return min(score, 100)
}

// Improvements returns at most three tips for text, in a fixed order.
func Improvements(text string, score int) []string {
	var tips []string
	if score < 80 {
		tips = append(tips, TipSpecifics)
	}
	if !strings.Contains(text, "?") {
		tips = append(tips, TipQuestion)
	}
	if CharacterCount(text) < 100 {
		tips = append(tips, TipExpand)
	}
	if !HasEmoji(text) {
		tips = append(tips, TipEmoji)
	}
	if !HasHashtag(text) {
		tips = append(tips, TipHashtags)
	}
	if len(tips) > maxImprovements {
		tips = tips[:maxImprovements]
	}
	return tips
}
