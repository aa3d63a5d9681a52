package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconPriorityHigh = "¹" // highest search precedence
	IconPriorityLow  = "¶" // lowest search precedence
	IconDuplicate    = "≈" // Almost equal (duplicate)
	IconMissing      = "✗" // Thin X (missing)
	IconOK           = " " // Space (OK - no icon to reduce noise)
	IconRemove       = "-" // Scheduled for removal by clean up
)
