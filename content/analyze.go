package content

import "strings"

// PostAnalysis is a deterministic review of an existing post.
type PostAnalysis struct {
	Score          int      `json:"score"`
	Length         Length   `json:"length"`
	CharacterCount int      `json:"characterCount"`
	HashtagCount   int      `json:"hashtagCount"`
	Insights       []string `json:"insights"`
	Suggestions    []string `json:"suggestions"`
}

// AnalyzePost scores text as if hashtags and emoji had been requested, measured
// against the band that best fits its length.
func AnalyzePost(text string) (PostAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return PostAnalysis{}, invalid("content is required")
	}

	n := CharacterCount(text)
	length := closestLength(n)
	score := Score(text, Flags{Length: length, IncludeHashtags: true, IncludeEmojis: true})

	a := PostAnalysis{
		Score:          score,
		Length:         length,
		CharacterCount: n,
		HashtagCount:   len(hashtagPattern.FindAllString(text, -1)),
		Insights:       []string{},
		Suggestions:    Improvements(text, score),
	}
	if !strings.Contains(text, "?") {
		a.Insights = append(a.Insights, "Posts with questions generate 40% more comments")
	}
	if a.HashtagCount < 3 {
		a.Insights = append(a.Insights, "Industry-specific hashtags increase reach by 25%")
	}
	a.Insights = append(a.Insights, "Visual content performs 3x better than text-only posts")
	a.Suggestions = append(a.Suggestions, "Consider adding an image or video")
	return a, nil
}

func closestLength(n int) Length {
	switch {
	case n <= LengthShort.Band().Max:
		return LengthShort
	case n <= LengthMedium.Band().Max:
		return LengthMedium
	default:
		return LengthLong
	}
}
