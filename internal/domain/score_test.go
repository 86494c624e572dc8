package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampImportance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, ClampImportance(-3.2))
	assert.Equal(t, 10.0, ClampImportance(42.0))
	assert.Equal(t, 7.3, ClampImportance(7.3))
}

func TestClampConfidence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.1, ClampConfidence(0.0))
	assert.Equal(t, 1.0, ClampConfidence(1.5))
	assert.Equal(t, 0.85, ClampConfidence(0.85))
}

func TestRoundScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.1, RoundScore(5.08))
	assert.Equal(t, 5.0, RoundScore(5.04))
	assert.Equal(t, 4.8, RoundScore(4.7778))
}
