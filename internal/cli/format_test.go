package cli

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "¥0", FormatMoney(0))
	assert.Equal(t, "¥1,235", FormatMoney(1234.5))
	assert.Equal(t, "¥100,000", FormatMoney(100000))
	assert.Equal(t, "-¥20", FormatMoney(-20.4))
}

func TestFormatAmountAndSigned(t *testing.T) {
	assert.Equal(t, "¥1,234.50", FormatAmount(1234.5))
	assert.Equal(t, "-¥20.50", FormatAmount(-20.5))
	assert.Equal(t, "+¥100.00", FormatSigned(100))
	assert.Equal(t, "-¥20.50", FormatSigned(-20.5))
	assert.Equal(t, "+¥0.00", FormatSigned(0))
}

func TestFormatWan(t *testing.T) {
	assert.Equal(t, "2w", FormatWan(20000))
	assert.Equal(t, "1.5w", FormatWan(15000))
	assert.Equal(t, "1w", FormatWan(10000))
	assert.Equal(t, "8,000", FormatWan(8000))
}

func TestFormatK(t *testing.T) {
	assert.Equal(t, "1.5k", FormatK(1500))
	assert.Equal(t, "1.0k", FormatK(1000))
	assert.Equal(t, "800", FormatK(800))
	assert.Equal(t, "-2.5k", FormatK(-2500))
}

func TestFormatMisc(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
	assert.Equal(t, "27.9%", FormatPercent(27.94))
	assert.Equal(t, "1 day", FormatDays(1))
	assert.Equal(t, "13 days", FormatDays(13))
	assert.Equal(t, "Sun", FormatDayOfWeek(0))
	assert.Equal(t, "???", FormatDayOfWeek(7))
}
