package content_test

import (
	"testing"

	"github.com/jrsteele09/go-profile-optimizer/content"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	medium := content.Flags{Length: content.LengthMedium, IncludeHashtags: true, IncludeEmojis: true}
	question := "🚀 Big news for the team this quarter. We shipped the new onboarding flow and cut setup time in half for every customer we talked to. What should we tackle next?\n\n• Faster imports\n• Better docs\n\n#Product #Launch"

	tests := []struct {
		name  string
		text  string
		flags content.Flags
		want  int
	}{
		{name: "plain short text", text: "hello", flags: medium, want: 70},
		{name: "everything", text: question, flags: medium, want: 100},
		{name: "emoji not requested", text: question, flags: content.Flags{Length: content.LengthMedium, IncludeHashtags: true}, want: 95},
		{name: "hashtags not requested", text: question, flags: content.Flags{Length: content.LengthMedium, IncludeEmojis: true}, want: 95},
		{name: "out of band", text: question, flags: content.Flags{Length: content.LengthLong, IncludeHashtags: true, IncludeEmojis: true}, want: 90},
		{name: "dash list", text: "Two things:\n- one\n- two", flags: content.Flags{Length: content.LengthShort}, want: 75},
		{name: "numbered list", text: "Steps:\n1. one\n2. two", flags: content.Flags{Length: content.LengthShort}, want: 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, content.Score(tt.text, tt.flags))
			require.Equal(t, content.Score(tt.text, tt.flags), content.Score(tt.text, tt.flags), "deterministic")
		})
	}
}

func TestImprovements(t *testing.T) {
	t.Run("ordered and capped", func(t *testing.T) {
		got := content.Improvements("short", 70)
		require.Equal(t, []string{content.TipSpecifics, content.TipQuestion, content.TipExpand}, got)
	})

	t.Run("good post gets only missing tips", func(t *testing.T) {
		text := "🚀 A long enough post with a clear question for the audience to answer in the comments today, right? #Growth"
		require.Empty(t, content.Improvements(text, 95))
	})

	t.Run("hashtag tip", func(t *testing.T) {
		text := "🚀 A long enough post with a clear question for the audience to answer in the comments today, right friends?"
		require.Equal(t, []string{content.TipHashtags}, content.Improvements(text, 90))
	})
}

func TestEmoji(t *testing.T) {
	require.True(t, content.HasEmoji("coffee ☕"))
	require.True(t, content.HasEmoji("done ✅"))
	require.True(t, content.HasEmoji("🇬🇧"))
	require.False(t, content.HasEmoji("plain text • bullet — dash"))

	stripped := content.StripEmoji("🔍 Trend:\n✅ one\n🛠️ tools  here 👇")
	require.Equal(t, "Trend:\n• one\ntools here", stripped)
	require.False(t, content.HasEmoji(stripped))
}

func TestEstimator(t *testing.T) {
	e := content.NewEstimator(9)
	for range 100 {
		est := e.Estimate("plain", 100)
		require.True(t, est.Simulated)
		require.GreaterOrEqual(t, est.Likes, 50)
		require.Less(t, est.Likes, 150)
		require.GreaterOrEqual(t, est.Views, 1000)
		require.Less(t, est.Views, 3000)
	}

	boosted := content.NewEstimator(9).Estimate("why? 🚀", 100)
	plain := content.NewEstimator(9).Estimate("plain", 100)
	require.Greater(t, boosted.Views, plain.Views)

	half := content.NewEstimator(9).Estimate("plain", 50)
	require.Less(t, half.Views, plain.Views)
}
