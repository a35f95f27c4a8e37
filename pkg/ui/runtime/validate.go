package runtime

// ValidationResult is the outcome of a widget's Validate call.
// Valid is true exactly when Errors is empty.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// OK is a passing result.
func OK() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid builds a failing result from one or more error messages.
func Invalid(errors ...string) ValidationResult {
	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

// WithWarning returns a copy of the result with a warning appended.
// Warnings never affect validity.
func (r ValidationResult) WithWarning(msg string) ValidationResult {
	r.Warnings = append(append([]string(nil), r.Warnings...), msg)
	return r
}

// Merge combines two results: errors and warnings concatenate, validity
// ANDs. Used by host-level aggregate validation.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	merged := ValidationResult{
		Valid:    r.Valid && other.Valid,
		Errors:   append(append([]string(nil), r.Errors...), other.Errors...),
		Warnings: append(append([]string(nil), r.Warnings...), other.Warnings...),
	}
	return merged
}
