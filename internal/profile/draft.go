package profile

import (
	"slices"
	"strconv"
)

// Field names a scalar draft field. The value is the backend's form field name.
type Field string

const (
	FieldFullName             Field = "full_name_raw"
	FieldFatherName           Field = "father_name_raw"
	FieldMotherName           Field = "mother_name_raw"
	FieldEmail                Field = "email"
	FieldPhoneCountryCode     Field = "phone_country_code"
	FieldPhoneNumber          Field = "phone_number"
	FieldNationality          Field = "nationality"
	FieldCurrentLivingCountry Field = "current_living_country"
	FieldPreferredCountries   Field = "preferred_countries"
	FieldBudgetMin            Field = "budget_min_bdt"
	FieldBudgetMax            Field = "budget_max_bdt"
	FieldPreferredCurrency    Field = "preferred_currency"
	FieldPreferredIntake      Field = "preferred_intake"
	FieldEducation            Field = "education_json"
	FieldResume               Field = "resume"
)

// EducationField names a column of an education entry.
type EducationField string

const (
	EduLevel         EducationField = "level"
	EduInstitution   EducationField = "institution"
	EduField         EducationField = "field"
	EduGPA           EducationField = "gpa"
	EduYearCompleted EducationField = "year_completed"
)

// EducationEntry is one row of the education history, holding the text
// exactly as typed. Numeric columns are parsed only when encoding.
type EducationEntry struct {
	Level         string `yaml:"level"`
	Institution   string `yaml:"institution"`
	Field         string `yaml:"field"`
	GPA           string `yaml:"gpa"`
	YearCompleted string `yaml:"year_completed"`
}

// Get returns the text of column f.
func (e EducationEntry) Get(f EducationField) string {
	switch f {
	case EduLevel:
		return e.Level
	case EduInstitution:
		return e.Institution
	case EduField:
		return e.Field
	case EduGPA:
		return e.GPA
	case EduYearCompleted:
		return e.YearCompleted
	}
	return ""
}

func (e *EducationEntry) set(f EducationField, v string) {
	switch f {
	case EduLevel:
		e.Level = v
	case EduInstitution:
		e.Institution = v
	case EduField:
		e.Field = v
	case EduGPA:
		e.GPA = v
	case EduYearCompleted:
		e.YearCompleted = v
	}
}

// Draft is the in-progress, not yet submitted profile.
type Draft struct {
	FullName             string `yaml:"full_name"`
	FatherName           string `yaml:"father_name"`
	MotherName           string `yaml:"mother_name"`
	Email                string `yaml:"email"`
	PhoneCountryCode     string `yaml:"phone_country_code"`
	PhoneNumber          string `yaml:"phone_number"`
	Nationality          string `yaml:"nationality"`
	CurrentLivingCountry string `yaml:"current_living_country"`

	// PreferredCountries is a set. Selection order is kept only so that
	// encoding is deterministic.
	PreferredCountries []string `yaml:"preferred_countries"`

	BudgetMinBDT      int    `yaml:"budget_min_bdt"`
	BudgetMaxBDT      int    `yaml:"budget_max_bdt"`
	PreferredCurrency string `yaml:"preferred_currency"`
	PreferredIntake   string `yaml:"preferred_intake"`

	Education []EducationEntry `yaml:"education"`

	// ResumePath points at a PDF on disk. The file is read at upload time.
	ResumePath string `yaml:"resume"`
}

// DefaultDraft returns the draft a new form starts from.
func DefaultDraft() Draft {
	return Draft{
		PhoneCountryCode:     "+880",
		Nationality:          "Bangladesh",
		CurrentLivingCountry: "Bangladesh",
		BudgetMinBDT:         500000,
		BudgetMaxBDT:         2000000,
		PreferredCurrency:    "BDT",
		Education: []EducationEntry{
			{Level: "HSC", Field: "Science"},
		},
	}
}

// HasCountry reports whether c is among the preferred countries.
func (d Draft) HasCountry(c string) bool {
	return slices.Contains(d.PreferredCountries, c)
}

// Value returns the display text of scalar field f.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldFullName:
		return d.FullName
	case FieldFatherName:
		return d.FatherName
	case FieldMotherName:
		return d.MotherName
	case FieldEmail:
		return d.Email
	case FieldPhoneCountryCode:
		return d.PhoneCountryCode
	case FieldPhoneNumber:
		return d.PhoneNumber
	case FieldNationality:
		return d.Nationality
	case FieldCurrentLivingCountry:
		return d.CurrentLivingCountry
	case FieldBudgetMin:
		return strconv.Itoa(d.BudgetMinBDT)
	case FieldBudgetMax:
		return strconv.Itoa(d.BudgetMaxBDT)
	case FieldPreferredCurrency:
		return d.PreferredCurrency
	case FieldPreferredIntake:
		return d.PreferredIntake
	case FieldResume:
		return d.ResumePath
	}
	return ""
}

func (d *Draft) set(f Field, v string) {
	switch f {
	case FieldFullName:
		d.FullName = v
	case FieldFatherName:
		d.FatherName = v
	case FieldMotherName:
		d.MotherName = v
	case FieldEmail:
		d.Email = v
	case FieldPhoneCountryCode:
		d.PhoneCountryCode = v
	case FieldPhoneNumber:
		d.PhoneNumber = v
	case FieldNationality:
		d.Nationality = v
	case FieldCurrentLivingCountry:
		d.CurrentLivingCountry = v
	case FieldBudgetMin:
		d.BudgetMinBDT = budgetValue(v)
	case FieldBudgetMax:
		d.BudgetMaxBDT = budgetValue(v)
	case FieldPreferredCurrency:
		d.PreferredCurrency = v
	case FieldPreferredIntake:
		d.PreferredIntake = v
	case FieldResume:
		d.ResumePath = v
	}
}

// budgetValue parses a budget input. Anything without a leading integer is 0.
func budgetValue(v string) int {
	n, ok := parseLeadingInt(v)
	if !ok {
		return 0
	}
	return n
}

// clone returns a deep copy of d.
func (d Draft) clone() Draft {
	out := d
	out.PreferredCountries = slices.Clone(d.PreferredCountries)
	out.Education = slices.Clone(d.Education)
	return out
}
