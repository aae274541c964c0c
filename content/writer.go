package content

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
	"google.golang.org/genai"
)

// Writer produces the draft text of a post. Drafts are post-processed, scored and
// estimated by the Engine regardless of which writer produced them.
type Writer interface {
	Name() string
	Draft(ctx context.Context, req Request, tmpl Template) (string, error)
}

var indexedName = regexp.MustCompile(`^(.*?)_?(\d+)$`)

// values are the request-derived placeholder values.
type values struct {
	direct   map[string]string
	replacer *strings.Replacer
}

var braces = strings.NewReplacer("{", "", "}", "")

func newValues(req Request) values {
	topic := braces.Replace(req.Topic)
	audience := braces.Replace(req.Audience)
	industry := Industry(topic)
	direct := map[string]string{
		"topic":           topic,
		"subject":         topic,
		"field":           topic,
		"audience":        audience,
		"target_audience": audience,
		"industry":        industry,
		"hashtags":        "",
	}
	pairs := make([]string, 0, len(direct)*2)
	for k, v := range direct {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return values{direct: direct, replacer: strings.NewReplacer(pairs...)}
}

// TemplateWriter fills template placeholders from the request and the phrase banks.
type TemplateWriter struct {
	catalog *Catalog
	rnd     *lockedRand
}

// NewTemplateWriter returns a TemplateWriter. A zero seed uses the current time.
func NewTemplateWriter(catalog *Catalog, seed uint64) *TemplateWriter {
	return &TemplateWriter{catalog: catalog, rnd: newLockedRand(seed)}
}

func (w *TemplateWriter) Name() string { return "template" }

func (w *TemplateWriter) Draft(_ context.Context, req Request, tmpl Template) (string, error) {
	return w.fill(tmpl.Body, newValues(req)), nil
}

// fill substitutes every placeholder in text. Names without a value or phrase bank
// receive a generic phrase, so no placeholder survives.
func (w *TemplateWriter) fill(text string, v values) string {
	offsets := map[string]int{}
	for pass := 0; pass < 3 && placeholderPattern.MatchString(text); pass++ {
		text = placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
			return w.resolve(m[1:len(m)-1], v, offsets)
		})
	}
	return placeholderPattern.ReplaceAllLiteralString(text, "this")
}

func (w *TemplateWriter) resolve(name string, v values, offsets map[string]int) string {
	if value, ok := v.direct[name]; ok {
		return value
	}

	base, n := name, 0
	bank := w.catalog.Phrases(name)
	if m := indexedName.FindStringSubmatch(name); m != nil && len(bank) == 0 {
		base = m[1]
		n, _ = strconv.Atoi(m[2])
		bank = w.catalog.Phrases(base)
	}
	if len(bank) == 0 {
		base, n = "generic", 0
		bank = w.catalog.Phrases(base)
	}
	if len(bank) == 0 {
		return "this"
	}

	offset, ok := offsets[base]
	if !ok {
		offset = w.rnd.IntN(len(bank))
		offsets[base] = offset
	}
	if n > 0 {
		offset += n - 1
	}
	return v.replacer.Replace(bank[offset%len(bank)])
}

// ContentGenerator is the part of the genai client used by GenAIWriter.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

const genAISystemPrompt = `You write LinkedIn posts. Reply with the post text only: no preamble, no markdown,
no hashtags and no placeholders in curly braces. Use short paragraphs.`

// GenAIWriter drafts posts with a Gemini model.
type GenAIWriter struct {
	models ContentGenerator
	model  string
}

// NewGenAIWriter creates a Gemini client for apiKey.
func NewGenAIWriter(ctx context.Context, apiKey, model string) (*GenAIWriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return NewGenAIWriterWith(client.Models, model), nil
}

// NewGenAIWriterWith wraps an existing generator.
func NewGenAIWriterWith(models ContentGenerator, model string) *GenAIWriter {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GenAIWriter{models: models, model: model}
}

func (w *GenAIWriter) Name() string { return "genai" }

func (w *GenAIWriter) Draft(ctx context.Context, req Request, tmpl Template) (string, error) {
	band := req.Length.Band()
	prompt := fmt.Sprintf(`Topic: %s
Audience: %s
Tone: %s
Length: between %d and %d characters, leaving room for a line of hashtags
Post style: %s (for example: %q)
Instructions: %s`,
		req.Topic, req.Audience, req.Tone, band.Min, band.Max, tmpl.Title, tmpl.Body, req.Prompt)

	resp, err := w.models.GenerateContent(ctx, w.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(genAISystemPrompt, genai.RoleUser),
		Temperature:       utils.Ptr[float32](0.8),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", apperrors.Wrapf(apperrors.ErrNotFound, "GenAI returned no text")
	}
	return text, nil
}
