package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers caller mistakes such as malformed input
	SeverityLow Severity = iota

	// SeverityMedium is the default for unclassified errors
	SeverityMedium

	// SeverityHigh covers failing dependencies (storage, listeners)
	SeverityHigh

	// SeverityCritical makes the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable:
		return SeverityCritical
	case CodeDatabaseError, CodeServiceInitialization, CodeConfigError, CodeMissingConfig:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeValueOutOfRange, CodeInvalidDate,
		CodeNullDatetime, CodeDuplicateEntry, CodeInvalidConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
