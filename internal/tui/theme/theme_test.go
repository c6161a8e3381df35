package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	th, ok := Lookup("  Tokyo-Night ")
	assert.True(t, ok)
	assert.Equal(t, "tokyo-night", th.Name)

	_, ok = Lookup("solarized")
	assert.False(t, ok)
}

func TestByNameFallsBack(t *testing.T) {
	assert.Equal(t, FlexokiDark.Name, ByName("nope").Name)
	assert.Equal(t, Terminal.Name, ByName("terminal").Name)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { SetActive(FlexokiDark.Name) })

	SetActive("catppuccin-mocha")
	assert.Equal(t, CatppuccinMocha.Name, Active.Name)
}

func TestAmountColor(t *testing.T) {
	assert.Equal(t, FlexokiDark.Income, FlexokiDark.AmountColor(10))
	assert.Equal(t, FlexokiDark.Income, FlexokiDark.AmountColor(0))
	assert.Equal(t, FlexokiDark.Loss, FlexokiDark.AmountColor(-0.5))
}
