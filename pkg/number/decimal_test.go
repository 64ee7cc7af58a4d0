package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestDiv(t *testing.T) {
	v, ok := Div(Decimal("10"), Decimal("4"))
	assert.Equal(t, true, ok)
	assert.Equal(t, "2.5", v.String())

	_, ok = Div(Decimal("10"), Decimal("0"))
	assert.Equal(t, false, ok)
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, "1", Min(Decimal("1"), Decimal("2")).String())
	assert.Equal(t, "2", Max(Decimal("1"), Decimal("2")).String())
}
