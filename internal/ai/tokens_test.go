package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTokens_NonEmptyText(t *testing.T) {
	count := CountTokens("The office printer stopped responding.")
	assert.Greater(t, count, 0)
}

func TestCountTokens_GrowsWithText(t *testing.T) {
	short := CountTokens("hello")
	long := CountTokens(strings.Repeat("hello world ", 500))
	assert.Greater(t, long, short)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("abc"))
	assert.Equal(t, 1, estimateTokens("abcd"))
	assert.Equal(t, 2, estimateTokens("abcde"))
	assert.Equal(t, 25, estimateTokens(strings.Repeat("x", 100)))
}
