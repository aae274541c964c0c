package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"openid", "profile", "email"}, utils.SplitList("openid profile  email"))
	require.Equal(t, []string{"http://a/cb", "https://b/cb"}, utils.SplitList("http://a/cb, https://b/cb,"))
	require.Empty(t, utils.SplitList(""))
}

func TestPointers(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, 42, utils.Value(utils.Ptr(42)))
}
