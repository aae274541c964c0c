package profile_test

import (
	"testing"

	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
	"github.com/jrsteele09/go-profile-optimizer/profile"
	"github.com/stretchr/testify/require"
)

func TestRandomSimulator(t *testing.T) {
	t.Run("analytics stay in range", func(t *testing.T) {
		s := profile.NewSimulator(7)
		for range 200 {
			a := s.Analytics()
			require.GreaterOrEqual(t, utils.Value(a.ProfileViews), 50)
			require.Less(t, utils.Value(a.ProfileViews), 150)
			require.GreaterOrEqual(t, utils.Value(a.Connections), 500)
			require.Less(t, utils.Value(a.Connections), 1500)
			require.GreaterOrEqual(t, utils.Value(a.PostImpressions), 1000)
			require.Less(t, utils.Value(a.PostImpressions), 6000)
		}
	})

	t.Run("same seed same numbers", func(t *testing.T) {
		require.Equal(t, profile.NewSimulator(3).Analytics(), profile.NewSimulator(3).Analytics())
	})

	t.Run("identity is a copy", func(t *testing.T) {
		s := profile.NewSimulator(1)
		id := s.Identity()
		id.FirstName = utils.Ptr("changed")
		require.Equal(t, "Jordan", utils.Value(s.Identity().FirstName))
	})
}
