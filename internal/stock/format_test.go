package stock

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "Rs. 500", FormatCurrency(500))
	assert.Equal(t, "Rs. 0", FormatCurrency(0))
	assert.True(t, strings.HasPrefix(FormatCurrency(1234567.89), "Rs. "))
}

func TestDateHelpers(t *testing.T) {
	today := TodayISO()
	month := ThisMonthISO()

	assert.Len(t, today, 10)
	assert.Len(t, month, 7)
	assert.True(t, strings.HasPrefix(today, month))
}

func TestDaysSinceBadDate(t *testing.T) {
	assert.Zero(t, daysSince("not-a-date", time.Now().UTC()))
}
