package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("no-such-theme").Primary)
}

func TestThemesDistinguishStatuses(t *testing.T) {
	for _, name := range Names {
		theme := GetTheme(name)
		assert.NotEqual(t, theme.Success, theme.Error, name)
		assert.NotEqual(t, theme.Success, theme.Warning, name)
		assert.NotEqual(t, theme.Warning, theme.Error, name)
	}
}
