package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/go-profile-optimizer/content"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := content.DefaultCatalog()
	for _, tone := range content.Tones {
		require.NotEmpty(t, c.ByTone(tone), tone)
	}
	for _, tmpl := range c.Templates() {
		require.NotEmpty(t, tmpl.Title, tmpl.ID)
		require.NotEmpty(t, tmpl.BestTimes, tmpl.ID)
		require.Positive(t, tmpl.ExpectedEngagement.Views, tmpl.ID)
		require.NotContains(t, tmpl.Body, "#", "hashtags are appended, not templated")
	}
	require.Len(t, c.NetworkingTemplates(), 3)
	require.NotEmpty(t, c.Phrases("extend"))

	tmpl, ok := c.Template("industry-insight")
	require.True(t, ok)
	want := []string{"industry", "main_insight", "implication_1", "implication_2", "implication_3"}
	if diff := cmp.Diff(want, tmpl.Placeholders()); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}
}

const customCatalog = `
templates:
  - {id: p, title: P, type: announcement, tone: professional, body: "News about {topic}: {custom_slot}"}
  - {id: c, title: C, type: question, tone: casual, body: "What do you think about {topic}?"}
  - {id: i, title: I, type: personal-story, tone: inspirational, body: "{timeframe} ago I started {topic}."}
  - {id: e, title: E, type: tip-list, tone: educational, body: "1. {tip1}"}
phrases:
  custom_slot: ["a custom phrase"]
`

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path is the default", func(t *testing.T) {
		c, err := content.LoadCatalog("")
		require.NoError(t, err)
		require.Equal(t, len(content.DefaultCatalog().Templates()), len(c.Templates()))
	})

	t.Run("file overrides templates and keeps default phrases", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "templates.yaml")
		require.NoError(t, os.WriteFile(path, []byte(customCatalog), 0o600))

		c, err := content.LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, c.Templates(), 4)
		require.Equal(t, []string{"a custom phrase"}, c.Phrases("custom_slot"))
		require.NotEmpty(t, c.Phrases("timeframe"))
		require.Len(t, c.NetworkingTemplates(), 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := content.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestParseCatalogRejects(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "templates: [",
		"missing tones": `templates: [{id: a, type: question, tone: professional, body: x}]`,
		"unknown tone":  `templates: [{id: a, type: question, tone: grumpy, body: x}]`,
		"unknown type":  `templates: [{id: a, type: rant, tone: casual, body: x}]`,
		"empty body":    `templates: [{id: a, type: question, tone: casual}]`,
		"duplicate ids": "templates: [{id: a, type: question, tone: casual, body: x}, {id: a, type: question, tone: casual, body: y}]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := content.ParseCatalog([]byte(doc))
			require.Error(t, err)
		})
	}
}
