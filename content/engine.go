package content

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAudience = "professionals"
	maxTopicLength  = 200

	WarningWriterFallback = "AI writer unavailable; generated from a template instead"
)

var toneEmoji = map[Tone]string{
	ToneProfessional:  "💼",
	ToneCasual:        "😊",
	ToneInspirational: "🌟",
	ToneEducational:   "📚",
}

type Options struct {
	// Latency is the simulated generation time for template drafts. Jitter adds up to
	// that much again at random.
	Latency time.Duration
	Jitter  time.Duration
	// Writer is an optional LLM writer used for requests that carry a prompt.
	Writer Writer
	// Seed fixes the random source. Zero uses the current time.
	Seed uint64
}

// Engine generates template-driven posts.
type Engine struct {
	catalog   *Catalog
	templates *TemplateWriter
	llm       Writer
	estimator *Estimator
	rnd       *lockedRand
	latency   time.Duration
	jitter    time.Duration
}

func NewEngine(catalog *Catalog, opts Options) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	seed := opts.Seed
	return &Engine{
		catalog:   catalog,
		templates: NewTemplateWriter(catalog, seed),
		llm:       opts.Writer,
		estimator: NewEstimator(seed),
		rnd:       newLockedRand(seed),
		latency:   opts.Latency,
		jitter:    opts.Jitter,
	}
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

// Normalize applies request defaults and validates the enumerations.
func Normalize(req Request) (Request, Flags, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return req, Flags{}, apperrors.Validation(apperrors.ErrInvalidRequest, "topic is required")
	}
	if CharacterCount(req.Topic) > maxTopicLength {
		return req, Flags{}, apperrors.Validation(apperrors.ErrInvalidRequest, "topic is too long")
	}
	req.Audience = strings.TrimSpace(req.Audience)
	if req.Audience == "" {
		req.Audience = DefaultAudience
	}
	if req.Tone == "" {
		req.Tone = ToneProfessional
	}
	if !req.Tone.Valid() {
		return req, Flags{}, apperrors.Validation(apperrors.ErrInvalidRequest, "tone must be one of professional, casual, inspirational, educational")
	}
	if req.Length == "" {
		req.Length = LengthMedium
	}
	if !req.Length.Valid() {
		return req, Flags{}, apperrors.Validation(apperrors.ErrInvalidRequest, "length must be one of short, medium, long")
	}
	flags := Flags{
		Length:          req.Length,
		IncludeHashtags: req.IncludeHashtags == nil || *req.IncludeHashtags,
		IncludeEmojis:   req.IncludeEmojis == nil || *req.IncludeEmojis,
	}
	return req, flags, nil
}

// Generate produces a post for req. The simulated latency and any LLM call are
// cancelled with ctx.
func (e *Engine) Generate(ctx context.Context, req Request) (*GeneratedContent, error) {
	req, flags, err := Normalize(req)
	if err != nil {
		return nil, err
	}
	tmpl, err := e.pickTemplate(req)
	if err != nil {
		return nil, err
	}

	draft, writer, warnings, err := e.draft(ctx, req, tmpl)
	if err != nil {
		return nil, err
	}

	text, tags := e.compose(draft, req, flags, tmpl)
	score := Score(text, flags)

	return &GeneratedContent{
		Content:             text,
		Score:               score,
		Improvements:        Improvements(text, score),
		Hashtags:            tags,
		EstimatedEngagement: e.estimator.Estimate(text, score),
		TemplateID:          tmpl.ID,
		Type:                tmpl.Type,
		Tone:                req.Tone,
		Length:              req.Length,
		CharacterCount:      CharacterCount(text),
		BestTimes:           tmpl.BestTimes,
		Writer:              writer,
		Warnings:            warnings,
	}, nil
}

// pickTemplate chooses at random from the tone's pool, or from the pool of the
// requested template's type.
func (e *Engine) pickTemplate(req Request) (Template, error) {
	pool := e.catalog.ByTone(req.Tone)
	if req.TemplateID != "" {
		t, ok := e.catalog.Template(req.TemplateID)
		if !ok {
			return Template{}, apperrors.Validation(apperrors.ErrNotFound, "unknown template "+req.TemplateID)
		}
		pool = e.catalog.ByType(t.Type)
	}
	if len(pool) == 0 {
		return Template{}, apperrors.Internal(apperrors.Wrapf(apperrors.ErrNotFound, "no templates for tone %s", req.Tone))
	}
	return pool[e.rnd.IntN(len(pool))], nil
}

func (e *Engine) draft(ctx context.Context, req Request, tmpl Template) (string, string, []string, error) {
	var warnings []string
	if e.llm != nil && req.Prompt != "" {
		text, err := e.llm.Draft(ctx, req, tmpl)
		if err == nil {
			return text, e.llm.Name(), nil, nil
		}
		if ctx.Err() != nil {
			return "", "", nil, apperrors.Wrapf(ctx.Err(), "content generation cancelled")
		}
		log.Warn().Err(err).Str("writer", e.llm.Name()).Msg("Writer failed, falling back to templates")
		warnings = append(warnings, WarningWriterFallback)
	}

	if err := e.wait(ctx); err != nil {
		return "", "", nil, err
	}
	text, err := e.templates.Draft(ctx, req, tmpl)
	if err != nil {
		return "", "", nil, err
	}
	return text, e.templates.Name(), warnings, nil
}

// wait simulates generation latency.
func (e *Engine) wait(ctx context.Context) error {
	d := e.latency
	if e.jitter > 0 {
		d += time.Duration(e.rnd.Float64() * float64(e.jitter))
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return apperrors.Wrapf(ctx.Err(), "content generation cancelled")
	}
}

// compose turns a draft into the final post: placeholders filled, emoji ensured or
// stripped, body fitted to the length band and the hashtag line appended.
func (e *Engine) compose(draft string, req Request, flags Flags, tmpl Template) (string, []string) {
	if !flags.IncludeEmojis {
		// Phrase-bank sentences added by fit are filled after the body is stripped.
		req.Topic = stripOr(req.Topic, "this topic")
		req.Audience = stripOr(req.Audience, DefaultAudience)
	}
	v := newValues(req)
	body := e.templates.fill(draft, v)

	if flags.IncludeEmojis {
		if !HasEmoji(body) {
			body = toneEmoji[req.Tone] + " " + strings.TrimSpace(body)
		}
	} else {
		body = StripEmoji(body)
	}
	body = tidy(body)

	tags := Hashtags(req.Topic, req.Audience, tmpl.Hashtags, flags.Length.maxHashtags())
	tagLine := ""
	if flags.IncludeHashtags {
		tagLine = strings.Join(tags, " ")
	}

	band := flags.Length.Band()
	if tagLine != "" {
		reserve := CharacterCount(tagLine) + 2
		band = Band{Min: max(band.Min-reserve, 0), Max: band.Max - reserve}
	}
	body = e.fit(body, band, v)
	if flags.IncludeEmojis && !HasEmoji(body) {
		body = truncate(toneEmoji[req.Tone]+" "+body, band.Max)
	}

	if tagLine != "" {
		body += "\n\n" + tagLine
	}
	return body, tags
}

// fit shortens body by dropping trailing lines (and truncating as a last resort), or
// lengthens it with phrase-bank sentences, until it falls within band.
func (e *Engine) fit(body string, band Band, v values) string {
	lines := strings.Split(body, "\n")
	for CharacterCount(strings.Join(lines, "\n")) > band.Max && len(lines) > 1 {
		lines = trimBlankTail(lines[:len(lines)-1])
	}
	body = strings.Join(lines, "\n")
	if CharacterCount(body) > band.Max {
		body = truncate(body, band.Max)
	}

	if CharacterCount(body) < band.Min {
		extend := e.catalog.Phrases("extend")
		sep := "\n\n"
		for _, i := range e.rnd.Perm(len(extend)) {
			sentence := e.templates.fill(v.replacer.Replace(extend[i]), v)
			if CharacterCount(body)+CharacterCount(sep)+CharacterCount(sentence) > band.Max {
				continue
			}
			body += sep + sentence
			sep = " "
			if CharacterCount(body) >= band.Min {
				break
			}
		}
	}
	return body
}

func stripOr(s, fallback string) string {
	if s = StripEmoji(s); s == "" {
		return fallback
	}
	return s
}

func trimBlankTail(lines []string) []string {
	for len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// truncate cuts s to at most n runes on a word boundary and marks the cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	cut := runes[:n-1]
	if i := lastSpace(cut); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(string(cut), " \n,;:") + "…"
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' || r[i] == '\n' {
			return i
		}
	}
	return -1
}

// tidy trims the text and collapses runs of blank lines.
func tidy(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	out := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
