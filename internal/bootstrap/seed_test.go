package bootstrap

import (
	"strings"
	"testing"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCommitteesAreComplete(t *testing.T) {
	committees := defaultCommittees()
	require.Len(t, committees, 4)

	seen := map[string]bool{}
	for _, c := range committees {
		assert.NotEmpty(t, c.Name)
		require.NotNil(t, c.NameAr, "committee %q is missing an Arabic name", c.Name)
		require.NotNil(t, c.Color, "committee %q is missing a color", c.Name)
		assert.True(t, strings.HasPrefix(*c.Color, "#"), "committee %q color %q is not a hex value", c.Name, *c.Color)
		assert.False(t, seen[c.Name], "duplicate committee name %q", c.Name)
		seen[c.Name] = true
	}

	assert.Equal(t, model.CommitteeTypeFourthYear, committees[3].CommitteeType)
}

func TestDefaultActivityTypesHavePositivePoints(t *testing.T) {
	for _, at := range defaultActivityTypes() {
		assert.NotEmpty(t, at.Name)
		assert.NotNil(t, at.NameAr, "activity type %q is missing an Arabic name", at.Name)
		assert.Greater(t, at.Points, 0, "activity type %q must award points", at.Name)
	}
}
