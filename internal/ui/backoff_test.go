package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshBackoff(t *testing.T) {
	cases := []struct {
		base     time.Duration
		failures int
		want     time.Duration
	}{
		{5 * time.Second, -2, 5 * time.Second},
		{5 * time.Second, 0, 5 * time.Second},
		{5 * time.Second, 1, 10 * time.Second},
		{5 * time.Second, 2, 20 * time.Second},
		{5 * time.Second, 3, maxBackoff},
		{5 * time.Second, 1000, maxBackoff},
		{45 * time.Second, 4, 45 * time.Second},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, calculateBackoff(tc.failures, tc.base), "base %v, failures %d", tc.base, tc.failures)
	}
}
