package content

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

type Position struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
}

// ProfileData is the member-supplied profile to evaluate.
type ProfileData struct {
	Headline        string      `json:"headline"`
	Summary         string      `json:"summary"`
	Industry        string      `json:"industry,omitempty"`
	Experience      []Position  `json:"experience"`
	Skills          []string    `json:"skills"`
	ProfilePicture  string      `json:"profilePicture"`
	Education       []Education `json:"education"`
	Recommendations []string    `json:"recommendations"`
}

type Recommendation struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Impact     Impact `json:"impact"`
	Priority   int    `json:"priority"`
}

type ProfileReport struct {
	Score           int              `json:"score"`
	Recommendations []Recommendation `json:"recommendations"`
	Strengths       []string         `json:"strengths"`
	MissingKeywords []string         `json:"missingKeywords"`
	// OptimizedHeadline and OptimizedSummary are suggested rewrites built from the
	// industry keywords and the most recent position.
	OptimizedHeadline string `json:"optimizedHeadline"`
	OptimizedSummary  string `json:"optimizedSummary"`
}

var industryKeywords = map[string][]string{
	"Technology": {"software", "development", "programming", "innovation", "digital", "AI", "machine learning"},
	"Marketing":  {"digital marketing", "SEO", "content", "branding", "analytics", "social media"},
	"Finance":    {"financial analysis", "investment", "risk management", "portfolio", "banking"},
	"Healthcare": {"patient care", "medical", "healthcare", "clinical", "treatment"},
	"Education":  {"teaching", "curriculum", "learning", "education", "training"},
}

var defaultKeywords = []string{"leadership", "management", "strategy", "growth", "innovation"}

// Keywords returns the keyword list for industry, or a general list for unknown industries.
func Keywords(industry string) []string {
	if k, ok := industryKeywords[industry]; ok {
		return k
	}
	return defaultKeywords
}

// OptimizedHeadlines returns the candidate headline rewrites for p.
func OptimizedHeadlines(p ProfileData) []string {
	k := Keywords(p.Industry)
	role, company := currentRole(p)
	second := role + " | " + k[1] + " • " + k[2]
	if company != "" {
		second = k[0] + " " + role + " | " + company + " | " + k[1] + " • " + k[2]
	}
	return []string{
		fmt.Sprintf("%s | %s & %s Expert | Helping companies with %s", role, k[0], k[1], k[2]),
		second,
		fmt.Sprintf("%s specializing in %s and %s | %s enthusiast", role, k[0], k[1], k[2]),
	}
}

// OptimizedSummary returns a summary rewrite for p.
func OptimizedSummary(p ProfileData) string {
	k := Keywords(p.Industry)
	role, company := currentRole(p)

	var b strings.Builder
	b.WriteString("Experienced " + role)
	if company != "" {
		b.WriteString(" at " + company)
	}
	if p.Industry != "" {
		b.WriteString(" in " + p.Industry)
	}
	fmt.Fprintf(&b, ".\n\nSpecialized in %s, %s and %s, I help organizations achieve their goals through innovative solutions and strategic thinking.\n\n", k[0], k[1], k[2])
	b.WriteString("Key areas of expertise:\n")
	fmt.Fprintf(&b, "• %s and %s\n", k[0], k[1])
	fmt.Fprintf(&b, "• %s and process optimization\n", k[2])
	b.WriteString("• Team leadership and cross-functional collaboration\n")
	b.WriteString("• Data-driven decision making\n\n")
	fmt.Fprintf(&b, "I'm passionate about %s and always looking to connect with like-minded professionals. Let's discuss how we can create value together.", k[0])
	return b.String()
}

func currentRole(p ProfileData) (string, string) {
	role, company := "Professional", ""
	if len(p.Experience) > 0 {
		if t := strings.TrimSpace(p.Experience[0].Title); t != "" {
			role = t
		}
		company = strings.TrimSpace(p.Experience[0].Company)
	}
	return role, company
}

// OptimizeProfile evaluates p and picks one of the headline rewrites at random.
func (e *Engine) OptimizeProfile(p ProfileData) ProfileReport {
	report := OptimizeProfile(p)
	headlines := OptimizedHeadlines(p)
	report.OptimizedHeadline = headlines[e.rnd.IntN(len(headlines))]
	return report
}

// OptimizeProfile scores profile completeness out of 100, lists prioritised
// recommendations and suggests rewrites. The headline is the first candidate.
func OptimizeProfile(p ProfileData) ProfileReport {
	score := 0
	if strings.TrimSpace(p.Headline) != "" {
		score += 15
	}
	if strings.TrimSpace(p.Summary) != "" {
		score += 20
	}
	if len(p.Experience) > 0 {
		score += 20
	}
	if len(p.Skills) >= 5 {
		score += 15
	}
	if p.ProfilePicture != "" {
		score += 10
	}
	if len(p.Education) > 0 {
		score += 10
	}
	if len(p.Recommendations) > 0 {
		score += 10
	}

	report := ProfileReport{
		Score:           min(score, 100),
		Recommendations: []Recommendation{},
		Strengths:       []string{},
		MissingKeywords: []string{},
	}

	if CharacterCount(p.Headline) < 50 {
		report.Recommendations = append(report.Recommendations, Recommendation{
			Category:   "Headline",
			Suggestion: "Optimize your headline with industry keywords and value proposition",
			Impact:     ImpactHigh,
			Priority:   1,
		})
	} else {
		report.Strengths = append(report.Strengths, "Comprehensive headline")
	}
	if CharacterCount(p.Summary) < 200 {
		report.Recommendations = append(report.Recommendations, Recommendation{
			Category:   "Summary",
			Suggestion: "Write a compelling summary that tells your professional story",
			Impact:     ImpactHigh,
			Priority:   2,
		})
	} else {
		report.Strengths = append(report.Strengths, "Detailed professional summary")
	}
	if len(p.Skills) < 10 {
		report.Recommendations = append(report.Recommendations, Recommendation{
			Category:   "Skills",
			Suggestion: "Add more relevant skills to improve searchability",
			Impact:     ImpactMedium,
			Priority:   3,
		})
	} else {
		report.Strengths = append(report.Strengths, "Diverse skill set")
	}
	if len(p.Experience) == 0 {
		report.Recommendations = append(report.Recommendations, Recommendation{
			Category:   "Experience",
			Suggestion: "Add your work experience and achievements",
			Impact:     ImpactMedium,
			Priority:   4,
		})
	} else if len(p.Experience) >= 3 {
		report.Strengths = append(report.Strengths, "Rich work experience")
	}
	if p.ProfilePicture == "" {
		report.Recommendations = append(report.Recommendations, Recommendation{
			Category:   "Photo",
			Suggestion: "Add a professional profile photo",
			Impact:     ImpactLow,
			Priority:   5,
		})
	}
	slices.SortStableFunc(report.Recommendations, func(a, b Recommendation) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	keywords := Keywords(p.Industry)
	text := strings.ToLower(p.Headline + " " + p.Summary)
	for _, k := range keywords {
		if !strings.Contains(text, strings.ToLower(k)) {
			report.MissingKeywords = append(report.MissingKeywords, k)
		}
	}
	report.OptimizedHeadline = OptimizedHeadlines(p)[0]
	report.OptimizedSummary = OptimizedSummary(p)
	return report
}
