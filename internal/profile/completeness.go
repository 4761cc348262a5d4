package profile

import "strings"

// Completeness returns the share, from 0 to 1, of the profile details an
// advisor relies on that are filled in. It is informational only and never
// gates submission.
func Completeness(d Draft) float64 {
	checks := []bool{
		strings.TrimSpace(d.FullName) != "",
		strings.TrimSpace(d.FatherName) != "",
		strings.TrimSpace(d.MotherName) != "",
		strings.TrimSpace(d.Email) != "",
		strings.TrimSpace(d.PhoneNumber) != "",
		len(d.PreferredCountries) > 0,
		strings.TrimSpace(d.PreferredIntake) != "",
		hasDetailedEducation(d.Education),
		d.ResumePath != "",
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(len(checks))
}

func hasDetailedEducation(entries []EducationEntry) bool {
	for _, e := range entries {
		if e.Level != "" && strings.TrimSpace(e.Institution) != "" {
			return true
		}
	}
	return false
}
