package content

import "slices"

// Tone selects the template pool.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneInspirational Tone = "inspirational"
	ToneEducational   Tone = "educational"
)

var Tones = []Tone{ToneProfessional, ToneCasual, ToneInspirational, ToneEducational}

func (t Tone) Valid() bool { return slices.Contains(Tones, t) }

// Length selects the target character band.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

var Lengths = []Length{LengthShort, LengthMedium, LengthLong}

func (l Length) Valid() bool { return slices.Contains(Lengths, l) }

// Band is an inclusive range of characters (runes).
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b Band) Contains(n int) bool { return n >= b.Min && n <= b.Max }

var bands = map[Length]Band{
	LengthShort:  {Min: 80, Max: 280},
	LengthMedium: {Min: 200, Max: 500},
	LengthLong:   {Min: 500, Max: 1300},
}

// Band returns the character band for l. Unknown lengths use the medium band.
func (l Length) Band() Band {
	if b, ok := bands[l]; ok {
		return b
	}
	return bands[LengthMedium]
}

// maxHashtags caps the hashtag line so it fits comfortably inside the band.
func (l Length) maxHashtags() int {
	switch l {
	case LengthShort:
		return 3
	case LengthLong:
		return 7
	default:
		return 5
	}
}

type TemplateType string

const (
	TypeThoughtLeadership TemplateType = "thought-leadership"
	TypePersonalStory     TemplateType = "personal-story"
	TypeIndustryInsight   TemplateType = "industry-insight"
	TypeQuestion          TemplateType = "question"
	TypeAnnouncement      TemplateType = "announcement"
	TypeTipList           TemplateType = "tip-list"
)

var TemplateTypes = []TemplateType{
	TypeThoughtLeadership, TypePersonalStory, TypeIndustryInsight, TypeQuestion, TypeAnnouncement, TypeTipList,
}

type Engagement struct {
	Likes    int `json:"likes" yaml:"likes"`
	Comments int `json:"comments" yaml:"comments"`
	Shares   int `json:"shares" yaml:"shares"`
	Views    int `json:"views" yaml:"views"`
}

// Template is an immutable post template. Body placeholders are written {name}.
type Template struct {
	ID                 string       `json:"id" yaml:"id"`
	Title              string       `json:"title" yaml:"title"`
	Type               TemplateType `json:"type" yaml:"type"`
	Tone               Tone         `json:"tone" yaml:"tone"`
	Body               string       `json:"template" yaml:"body"`
	ExpectedEngagement Engagement   `json:"expectedEngagement" yaml:"expectedEngagement"`
	BestTimes          []string     `json:"bestTimes" yaml:"bestTimes"`
	Hashtags           []string     `json:"hashtags" yaml:"hashtags"`
}

// Placeholders returns the distinct placeholder names in the template body.
func (t Template) Placeholders() []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Body, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Request configures one generation.
type Request struct {
	Topic           string `json:"topic"`
	Audience        string `json:"audience,omitempty"`
	Tone            Tone   `json:"tone,omitempty"`
	Length          Length `json:"length,omitempty"`
	IncludeHashtags *bool  `json:"includeHashtags,omitempty"`
	IncludeEmojis   *bool  `json:"includeEmojis,omitempty"`
	TemplateID      string `json:"templateId,omitempty"`
	// Prompt is free-form guidance for an LLM writer. The template writer ignores it.
	Prompt string `json:"prompt,omitempty"`
}

// Flags are the request switches that affect scoring.
type Flags struct {
	Length          Length
	IncludeHashtags bool
	IncludeEmojis   bool
}

// EstimatedEngagement is a simulation for display purposes, not a prediction.
type EstimatedEngagement struct {
	Engagement
	Simulated  bool   `json:"simulated"`
	Disclaimer string `json:"disclaimer"`
}

// GeneratedContent is the result of one generation.
type GeneratedContent struct {
	Content             string              `json:"content"`
	Score               int                 `json:"score"`
	Improvements        []string            `json:"improvements"`
	Hashtags            []string            `json:"hashtags"`
	EstimatedEngagement EstimatedEngagement `json:"estimatedEngagement"`
	TemplateID          string              `json:"templateId"`
	Type                TemplateType        `json:"type"`
	Tone                Tone                `json:"tone"`
	Length              Length              `json:"length"`
	CharacterCount      int                 `json:"characterCount"`
	BestTimes           []string            `json:"bestTimes,omitempty"`
	Writer              string              `json:"writer"`
	Warnings            []string            `json:"warnings,omitempty"`
}
