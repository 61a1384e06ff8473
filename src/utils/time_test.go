package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetClosestFriday(t *testing.T) {
	// 2024-06-24 is a Monday
	monday := time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, friday, GetClosestFriday(monday))
	assert.Equal(t, friday, GetClosestFriday(friday))
	assert.Equal(t, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), GetClosestFriday(saturday))
}
