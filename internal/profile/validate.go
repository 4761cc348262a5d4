package profile

import "strings"

// MsgSelectCountry is shown when no preferred country is selected.
const MsgSelectCountry = "Please select at least one preferred country"

// ValidationError reports a draft that must not be submitted.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate is the gate run before a draft is encoded. It checks that at least
// one preferred country is selected, then that full name and email are
// present. Formats and budget ranges are left to the backend.
func Validate(d Draft) error {
	if len(d.PreferredCountries) == 0 {
		return &ValidationError{Field: FieldPreferredCountries, Reason: MsgSelectCountry}
	}
	if strings.TrimSpace(d.FullName) == "" {
		return &ValidationError{Field: FieldFullName, Reason: "Full name is required"}
	}
	if strings.TrimSpace(d.Email) == "" {
		return &ValidationError{Field: FieldEmail, Reason: "Email is required"}
	}
	return nil
}
