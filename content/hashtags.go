package content

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

var topicHashtags = map[string][]string{
	"artificial intelligence": {"#AI", "#MachineLearning", "#Technology", "#Innovation", "#Future"},
	"ai":                      {"#AI", "#MachineLearning", "#Technology", "#Innovation", "#Future"},
	"machine learning":        {"#MachineLearning", "#AI", "#DataScience", "#Technology"},
	"software development":    {"#SoftwareDevelopment", "#Programming", "#Tech", "#Coding", "#DevLife"},
	"software":                {"#SoftwareDevelopment", "#Programming", "#Tech", "#Coding"},
	"marketing":               {"#Marketing", "#DigitalMarketing", "#Growth", "#Strategy", "#Business"},
	"leadership":              {"#Leadership", "#Management", "#TeamBuilding", "#Growth", "#Success"},
	"entrepreneurship":        {"#Entrepreneurship", "#Startup", "#Business", "#Innovation", "#Success"},
	"data":                    {"#Data", "#Analytics", "#DataScience", "#BigData"},
	"career":                  {"#Career", "#CareerAdvice", "#JobSearch", "#Growth"},
}

var audienceHashtags = map[string][]string{
	"software engineers": {"#SoftwareEngineering", "#DevCommunity", "#Programming"},
	"developers":         {"#Developers", "#DevCommunity", "#Programming"},
	"marketers":          {"#MarketingTips", "#DigitalMarketing", "#GrowthHacking"},
	"executives":         {"#Leadership", "#Strategy", "#Business"},
	"entrepreneurs":      {"#Entrepreneurship", "#StartupLife", "#Innovation"},
	"professionals":      {"#Professionals", "#Networking"},
}

var generalHashtags = []string{"#ProfessionalDevelopment", "#CareerGrowth", "#Networking", "#Success"}

var industries = map[string]string{
	"ai":                      "Technology",
	"artificial intelligence": "Technology",
	"machine learning":        "Technology",
	"software":                "Software Development",
	"software development":    "Software Development",
	"marketing":               "Digital Marketing",
	"leadership":              "Business Leadership",
	"entrepreneurship":        "Business",
	"finance":                 "Finance",
	"healthcare":              "Healthcare",
	"education":               "Education",
}

// Industry maps a topic to a broad industry name.
func Industry(topic string) string {
	key := strings.ToLower(strings.TrimSpace(topic))
	if v, ok := industries[key]; ok {
		return v
	}
	for _, k := range slices.Sorted(maps.Keys(industries)) {
		if containsWord(key, k) {
			return industries[k]
		}
	}
	return "Technology"
}

// Hashtags suggests up to limit hashtags for a topic and audience: topic tags first,
// then audience, template and general tags, without duplicates.
func Hashtags(topic, audience string, templateTags []string, limit int) []string {
	topicKey := strings.ToLower(strings.TrimSpace(topic))
	topicTags, ok := topicHashtags[topicKey]
	if !ok {
		for _, k := range slices.Sorted(maps.Keys(topicHashtags)) {
			if containsWord(topicKey, k) {
				topicTags = topicHashtags[k]
				break
			}
		}
	}
	if len(topicTags) == 0 {
		if tag := TagFor(topic); tag != "" {
			topicTags = []string{tag}
		}
	}

	var out []string
	seen := map[string]bool{}
	add := func(tags []string, n int) {
		for _, tag := range tags {
			if n == 0 || len(out) == limit {
				return
			}
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
			n--
		}
	}
	add(topicTags, 3)
	add(audienceHashtags[strings.ToLower(strings.TrimSpace(audience))], 2)
	add(templateTags, 2)
	add(generalHashtags, len(generalHashtags))
	return out
}

const maxTagLength = 30

// TagFor turns free text into a CamelCase hashtag, or "" if nothing usable is left.
func TagFor(text string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	if b.Len() == 0 || utf8.RuneCountInString(b.String()) > maxTagLength {
		return ""
	}
	return "#" + b.String()
}

// containsWord reports whether phrase occurs in s on word boundaries.
func containsWord(s, phrase string) bool {
	words := strings.Fields(s)
	target := strings.Fields(phrase)
	for i := 0; i+len(target) <= len(words); i++ {
		match := true
		for j, w := range target {
			if strings.Trim(words[i+j], ".,!?;:") != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
