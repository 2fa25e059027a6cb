package percent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, Percent(0), FromInt(-5))
	assert.Equal(t, Percent(100), FromInt(150))
	assert.Equal(t, Percent(34), FromFloat(33.5))
	assert.Equal(t, Percent(0), FromFloat(math.NaN()))
	assert.Equal(t, Percent(100), FromFloat(math.Inf(1)))
	p, err := FromString(" 55% ")
	require.NoError(t, err)
	assert.Equal(t, Percent(55), p)
	_, err = FromString("half")
	assert.Error(t, err)
}

func TestArithmetic(t *testing.T) {
	p := Percent(50)
	assert.Equal(t, 4, p.CeilOf(7))
	assert.Equal(t, 2, p.CeilOf(4))
	assert.Equal(t, 1, p.CeilOf(1))
	assert.Equal(t, 0, p.CeilOf(0))
	assert.Equal(t, 3, Percent(40).CeilOf(6))
	assert.True(t, p.Within(30, 70))
	assert.False(t, Percent(71).Within(30, 70))
	assert.Equal(t, Percent(70), Percent(90).Clamp(30, 70))
	assert.Equal(t, Percent(30), Percent(10).Clamp(30, 70))
	assert.Equal(t, "50%", p.String())
}
