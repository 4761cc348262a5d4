package profile

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Part is one named text field of the transport payload.
type Part struct {
	Name  string
	Value string
}

// EncodedEducation is an education entry as the backend receives it inside
// education_json. Empty optional columns are left out.
type EncodedEducation struct {
	Level         string   `json:"level"`
	Institution   string   `json:"institution,omitempty"`
	Field         string   `json:"field,omitempty"`
	GPA           *float64 `json:"gpa,omitempty"`
	YearCompleted *int     `json:"year_completed,omitempty"`
}

// Payload is the transport form of a draft: ordered text fields, the
// education list they embed, and an optional resume file.
type Payload struct {
	Fields     []Part
	Education  []EncodedEducation
	ResumePath string
}

// Get returns the value of the text field named name.
func (p Payload) Get(name Field) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == string(name) {
			return f.Value, true
		}
	}
	return "", false
}

// Encode maps a draft to its transport payload. It is pure and never fails:
// unparsable numeric education columns are dropped from their entry.
func Encode(d Draft) Payload {
	education := encodeEducation(d.Education)
	// Marshalling plain strings and finite numbers cannot fail.
	educationJSON, _ := json.Marshal(education)

	fields := []Part{
		{string(FieldFullName), d.FullName},
		{string(FieldFatherName), d.FatherName},
		{string(FieldMotherName), d.MotherName},
		{string(FieldEmail), d.Email},
		{string(FieldPhoneCountryCode), d.PhoneCountryCode},
		{string(FieldPhoneNumber), d.PhoneNumber},
		{string(FieldNationality), d.Nationality},
		{string(FieldCurrentLivingCountry), d.CurrentLivingCountry},
		{string(FieldPreferredCountries), strings.Join(d.PreferredCountries, ",")},
		{string(FieldBudgetMin), strconv.Itoa(d.BudgetMinBDT)},
		{string(FieldBudgetMax), strconv.Itoa(d.BudgetMaxBDT)},
		{string(FieldPreferredCurrency), d.PreferredCurrency},
		{string(FieldPreferredIntake), d.PreferredIntake},
		{string(FieldEducation), string(educationJSON)},
	}

	return Payload{
		Fields:     fields,
		Education:  education,
		ResumePath: d.ResumePath,
	}
}

// encodeEducation keeps entries with a level, in order.
func encodeEducation(entries []EducationEntry) []EncodedEducation {
	out := make([]EncodedEducation, 0, len(entries))
	for _, e := range entries {
		if e.Level == "" {
			continue
		}
		enc := EncodedEducation{
			Level:       e.Level,
			Institution: e.Institution,
			Field:       e.Field,
		}
		if e.GPA != "" {
			if v, ok := parseLeadingFloat(e.GPA); ok {
				enc.GPA = &v
			}
		}
		if e.YearCompleted != "" {
			if v, ok := parseLeadingInt(e.YearCompleted); ok {
				enc.YearCompleted = &v
			}
		}
		out = append(out, enc)
	}
	return out
}

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseLeadingFloat reads the decimal number at the start of s, ignoring
// leading whitespace and any trailing text ("3.75 CGPA" is 3.75).
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseLeadingInt reads the integer at the start of s ("2024.5" is 2024).
func parseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}
