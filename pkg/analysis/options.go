package analysis

import "fmt"

// SortField specifies how ByFile and ByRule are ordered.
type SortField string

const (
	// SortByCount orders by issue count.
	SortByCount SortField = "count"
	// SortByAlpha orders by rule ID or path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity orders by error count, then warning count.
	SortBySeverity SortField = "severity"
)

// ParseSortField converts a flag value into a SortField.
func ParseSortField(s string) (SortField, error) {
	field := SortField(s)
	if !field.IsValid() {
		return "", fmt.Errorf("invalid sort field %q (want count, alpha or severity)", s)
	}
	return field, nil
}

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// SortBy specifies how to sort ByFile and ByRule.
	SortBy SortField

	// SortDesc puts the largest counts first. Alphabetical order is
	// reversed when set.
	SortDesc bool

	// WorkingDir is the directory paths are made relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options sorted by descending issue count.
func DefaultOptions() Options {
	return Options{
		SortBy:   SortByCount,
		SortDesc: true,
	}
}
