package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which cards and the form
	// stack vertically.
	LayoutCompactWidth = 90

	// LayoutWideWidth is the minimum width to show the last refresh time.
	LayoutWideWidth = 110
)

// Table column widths.
const (
	nameColumnMin   = 16
	statusColumn    = 22
	priceColumn     = 12
	tableChromeCols = 10 // borders and padding
)

// Timing constants.
const (
	// ToastTTL is how long a notification stays on screen.
	ToastTTL = 3 * time.Second

	// MaxToasts caps the visible notification stack.
	MaxToasts = 4
)
