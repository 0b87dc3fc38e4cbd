package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundedMean(t *testing.T) {
	assert.Equal(t, 0, RoundedMean(nil))
	assert.Equal(t, 0, RoundedMean([]int{}))
	assert.Equal(t, 3, RoundedMean([]int{3}))
	assert.Equal(t, 4, RoundedMean([]int{3, 5}))  // 4.0
	assert.Equal(t, 5, RoundedMean([]int{4, 5}))  // 4.5 rounds up
	assert.Equal(t, 4, RoundedMean([]int{4, 4, 5}))
	assert.Equal(t, 3, RoundedMean([]int{1, 2, 3, 4, 5}))
}
