package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation completed
	SymbolFail    = "✗" // Operation failed
)
