package ui

import "time"

// maxBackoff caps the periodic refresh interval while the service is down,
// unless the configured interval is already longer.
const maxBackoff = 30 * time.Second

// calculateBackoff doubles the refresh interval for each consecutive failed
// refresh.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	d := base
	for range failures {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}
