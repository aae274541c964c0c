package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-profile-optimizer/content"
	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newEngine(t *testing.T, seed uint64) *content.Engine {
	t.Helper()
	return content.NewEngine(content.DefaultCatalog(), content.Options{Seed: seed})
}

func TestGenerateScenarioA(t *testing.T) {
	e := newEngine(t, 1)
	got, err := e.Generate(context.Background(), content.Request{
		Topic:           "AI",
		Tone:            content.ToneProfessional,
		Length:          content.LengthMedium,
		IncludeHashtags: utils.Ptr(true),
		IncludeEmojis:   utils.Ptr(true),
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, got.CharacterCount, 200)
	require.LessOrEqual(t, got.CharacterCount, 500)
	require.Equal(t, content.CharacterCount(got.Content), got.CharacterCount)
	require.True(t, content.HasHashtag(got.Content))
	require.Contains(t, got.Content, "#AI")
	require.True(t, content.HasEmoji(got.Content))
	require.GreaterOrEqual(t, got.Score, 70)
	require.LessOrEqual(t, got.Score, 100)
	require.LessOrEqual(t, len(got.Improvements), 3)
	require.Equal(t, content.ToneProfessional, got.Tone)
	require.Equal(t, "template", got.Writer)

	require.True(t, got.EstimatedEngagement.Simulated)
	require.Equal(t, content.EngagementDisclaimer, got.EstimatedEngagement.Disclaimer)
	require.Positive(t, got.EstimatedEngagement.Views)
}

func TestGenerateBands(t *testing.T) {
	topics := []string{"AI", "software development", "Leadership", "remote team rituals", "{sneaky} topic"}
	for _, tone := range content.Tones {
		for _, length := range content.Lengths {
			for _, hashtags := range []bool{true, false} {
				t.Run(string(tone)+"/"+string(length), func(t *testing.T) {
					for seed := uint64(1); seed <= 12; seed++ {
						e := newEngine(t, seed)
						topic := topics[int(seed)%len(topics)]
						got, err := e.Generate(context.Background(), content.Request{
							Topic:           topic,
							Tone:            tone,
							Length:          length,
							IncludeHashtags: utils.Ptr(hashtags),
						})
						require.NoError(t, err)

						band := length.Band()
						require.True(t, band.Contains(got.CharacterCount),
							"seed %d template %s: %d chars not in %v\n%s", seed, got.TemplateID, got.CharacterCount, band, got.Content)
						require.GreaterOrEqual(t, got.Score, 0)
						require.LessOrEqual(t, got.Score, 100)
						require.NotRegexp(t, `\{[A-Za-z0-9_]+\}`, got.Content, "placeholder leaked")
						require.Equal(t, hashtags, content.HasHashtag(got.Content))
					}
				})
			}
		}
	}
}

func TestGenerateEveryTemplateFillsCompletely(t *testing.T) {
	catalog := content.DefaultCatalog()
	for _, tmpl := range catalog.Templates() {
		t.Run(tmpl.ID, func(t *testing.T) {
			require.NotEmpty(t, tmpl.Placeholders())
			e := content.NewEngine(catalog, content.Options{Seed: 7})
			got, err := e.Generate(context.Background(), content.Request{
				Topic:      "machine learning",
				Length:     content.LengthLong,
				TemplateID: tmpl.ID,
			})
			require.NoError(t, err)
			require.Equal(t, tmpl.Type, got.Type, "pool is the template's type")
			require.NotContains(t, got.Content, "{")
			require.NotContains(t, got.Content, "}")
		})
	}
}

func TestGenerateEmojiHandling(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		e := newEngine(t, seed)
		got, err := e.Generate(context.Background(), content.Request{
			Topic:         "marketing",
			Tone:          content.ToneCasual,
			IncludeEmojis: utils.Ptr(false),
		})
		require.NoError(t, err)
		require.False(t, content.HasEmoji(got.Content), got.Content)
		require.Contains(t, got.Improvements, content.TipEmoji)

		got, err = e.Generate(context.Background(), content.Request{Topic: "marketing", Tone: content.ToneEducational})
		require.NoError(t, err)
		require.True(t, content.HasEmoji(got.Content), got.Content)
	}

	t.Run("emoji in the topic is stripped from every length", func(t *testing.T) {
		for seed := uint64(1); seed <= 20; seed++ {
			e := newEngine(t, seed)
			for _, tone := range content.Tones {
				for _, length := range content.Lengths {
					got, err := e.Generate(context.Background(), content.Request{
						Topic:           "🚀 rockets",
						Audience:        "founders ✨",
						Tone:            tone,
						Length:          length,
						IncludeHashtags: utils.Ptr(false),
						IncludeEmojis:   utils.Ptr(false),
					})
					require.NoError(t, err)
					require.False(t, content.HasEmoji(got.Content), got.Content)
					require.True(t, length.Band().Contains(got.CharacterCount), "%s/%s: %d", tone, length, got.CharacterCount)
				}
			}
		}
	})
}

func TestGenerateValidation(t *testing.T) {
	e := newEngine(t, 1)
	ctx := context.Background()

	tests := []struct {
		name string
		req  content.Request
		want error
	}{
		{name: "missing topic", req: content.Request{Topic: "  "}, want: apperrors.ErrInvalidRequest},
		{name: "bad tone", req: content.Request{Topic: "AI", Tone: "sarcastic"}, want: apperrors.ErrInvalidRequest},
		{name: "bad length", req: content.Request{Topic: "AI", Length: "epic"}, want: apperrors.ErrInvalidRequest},
		{name: "long topic", req: content.Request{Topic: strings.Repeat("a", 201)}, want: apperrors.ErrInvalidRequest},
		{name: "unknown template", req: content.Request{Topic: "AI", TemplateID: "nope"}, want: apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Generate(ctx, tt.req)
			require.Nil(t, got)
			require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			require.True(t, apperrors.Is(err, tt.want))
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	req, flags, err := content.Normalize(content.Request{Topic: " AI "})
	require.NoError(t, err)
	require.Equal(t, "AI", req.Topic)
	require.Equal(t, content.DefaultAudience, req.Audience)
	require.Equal(t, content.ToneProfessional, req.Tone)
	require.Equal(t, content.LengthMedium, req.Length)
	require.True(t, flags.IncludeHashtags)
	require.True(t, flags.IncludeEmojis)
}

func TestGenerateLatency(t *testing.T) {
	t.Run("waits for the simulated latency", func(t *testing.T) {
		e := content.NewEngine(nil, content.Options{Latency: 50 * time.Millisecond, Seed: 1})
		start := time.Now()
		_, err := e.Generate(context.Background(), content.Request{Topic: "AI"})
		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("cancellation interrupts the wait", func(t *testing.T) {
		e := content.NewEngine(nil, content.Options{Latency: time.Minute, Seed: 1})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		got, err := e.Generate(ctx, content.Request{Topic: "AI"})
		require.Nil(t, got)
		require.True(t, errors.Is(err, context.DeadlineExceeded))
		require.Less(t, time.Since(start), 5*time.Second)
	})
}

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func TestGenerateWithWriter(t *testing.T) {
	ctx := context.Background()

	t.Run("prompted requests use the writer", func(t *testing.T) {
		gen := &fakeGenerator{text: "Shipping our first {topic} feature taught me more than any course.\n\nWhat surprised you most when you started?"}
		e := content.NewEngine(nil, content.Options{Seed: 3, Writer: content.NewGenAIWriterWith(gen, "")})

		got, err := e.Generate(ctx, content.Request{Topic: "AI", Prompt: "Write about our launch"})
		require.NoError(t, err)
		require.Equal(t, "genai", got.Writer)
		require.Contains(t, got.Content, "Shipping our first AI feature")
		require.True(t, content.LengthMedium.Band().Contains(got.CharacterCount))
		require.Len(t, gen.prompts, 1)
		require.Contains(t, gen.prompts[0], "Write about our launch")
	})

	t.Run("requests without a prompt skip the writer", func(t *testing.T) {
		gen := &fakeGenerator{text: "unused"}
		e := content.NewEngine(nil, content.Options{Seed: 3, Writer: content.NewGenAIWriterWith(gen, "")})
		got, err := e.Generate(ctx, content.Request{Topic: "AI"})
		require.NoError(t, err)
		require.Equal(t, "template", got.Writer)
		require.Empty(t, gen.prompts)
	})

	t.Run("writer failure falls back to templates", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("quota exceeded")}
		e := content.NewEngine(nil, content.Options{Seed: 3, Writer: content.NewGenAIWriterWith(gen, "")})
		got, err := e.Generate(ctx, content.Request{Topic: "AI", Prompt: "anything"})
		require.NoError(t, err)
		require.Equal(t, "template", got.Writer)
		require.Equal(t, []string{content.WarningWriterFallback}, got.Warnings)
	})
}

func TestNetworkingMessage(t *testing.T) {
	e := newEngine(t, 5)
	for range 20 {
		msg, err := e.NetworkingMessage(content.Target{Name: "Grace"}, "compilers")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(msg, "Hi Grace") || strings.HasPrefix(msg, "Hello Grace"), msg)
		require.NotContains(t, msg, "{")
	}

	msg, err := e.NetworkingMessage(content.Target{}, "compilers")
	require.NoError(t, err)
	require.Contains(t, msg, "there")

	_, err = e.NetworkingMessage(content.Target{Name: "Grace"}, " ")
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
