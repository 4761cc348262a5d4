package profileform

import (
	"fmt"

	"github.com/goabroadai/goabroad/internal/profile"
)

type kind int

const (
	kindText kind = iota
	kindSelect
	kindCountries
	kindResume
	kindButton
)

type action int

const (
	actNone action = iota
	actAddEducation
	actRemoveEducation
	actSubmit
)

// item is one focusable control of the form.
type item struct {
	kind        kind
	section     string
	label       string
	placeholder string
	field       profile.Field
	edu         int // education row, -1 for scalar fields
	eduField    profile.EducationField
	required    bool
	numeric     bool
	options     []string
	action      action
}

func (it item) value(d profile.Draft) string {
	if it.edu >= 0 {
		if it.edu >= len(d.Education) {
			return ""
		}
		return d.Education[it.edu].Get(it.eduField)
	}
	return d.Value(it.field)
}

func (it item) apply(f *profile.Form, v string) {
	if it.edu >= 0 {
		f.UpdateEducation(it.edu, it.eduField, v)
		return
	}
	f.Set(it.field, v)
}

func text(section, label string, field profile.Field, placeholder string) item {
	return item{kind: kindText, section: section, label: label, field: field, edu: -1, placeholder: placeholder}
}

func choice(section, label string, field profile.Field, options []string) item {
	return item{kind: kindSelect, section: section, label: label, field: field, edu: -1, options: options}
}

func button(section, label string, act action, edu int) item {
	return item{kind: kindButton, section: section, label: label, action: act, edu: edu}
}

// buildItems lays out the form for d. Education rows depend on the number
// of entries, so the layout is rebuilt whenever entries are added or removed.
func buildItems(d profile.Draft) []item {
	const (
		personal   = "Personal Information"
		contact    = "Contact Information"
		background = "Background"
		education  = "Education"
		study      = "Study Preferences"
		resume     = "Resume"
	)

	fullName := text(personal, "Full Name", profile.FieldFullName, "As on your passport")
	fullName.required = true
	items := []item{
		fullName,
		text(personal, "Father's Name", profile.FieldFatherName, ""),
		text(personal, "Mother's Name", profile.FieldMotherName, ""),
	}

	email := text(contact, "Email", profile.FieldEmail, "you@example.com")
	email.required = true
	phone := text(contact, "Phone Number", profile.FieldPhoneNumber, "")
	phone.numeric = true
	items = append(items,
		email,
		choice(contact, "Country Code", profile.FieldPhoneCountryCode, profile.PhoneCodes),
		phone,
		choice(background, "Nationality", profile.FieldNationality, profile.Countries),
		choice(background, "Living In", profile.FieldCurrentLivingCountry, profile.Countries),
	)

	for i := range d.Education {
		sec := fmt.Sprintf("%s #%d", education, i+1)
		col := func(k kind, label string, f profile.EducationField, placeholder string) item {
			return item{kind: k, section: sec, label: label, edu: i, eduField: f, placeholder: placeholder}
		}
		level := col(kindSelect, "Level", profile.EduLevel, "")
		level.options = profile.EducationLevels
		year := col(kindText, "Year Completed", profile.EduYearCompleted, "2020")
		year.numeric = true
		items = append(items,
			level,
			col(kindText, "Institution", profile.EduInstitution, ""),
			col(kindText, "Field of Study", profile.EduField, "Science"),
			col(kindText, "GPA / Result", profile.EduGPA, "e.g. 4.5 out of 5"),
			year,
		)
		if len(d.Education) > 1 {
			items = append(items, button(sec, fmt.Sprintf("Remove Education #%d", i+1), actRemoveEducation, i))
		}
	}
	items = append(items, button("", "Add Education", actAddEducation, -1))

	minBudget := text(study, "Budget Min (BDT)", profile.FieldBudgetMin, "")
	minBudget.numeric = true
	maxBudget := text(study, "Budget Max (BDT)", profile.FieldBudgetMax, "")
	maxBudget.numeric = true
	items = append(items,
		item{kind: kindCountries, section: study, label: "Preferred Countries", required: true, edu: -1},
		minBudget,
		maxBudget,
		choice(study, "Currency", profile.FieldPreferredCurrency, profile.Currencies),
		text(study, "Preferred Intake", profile.FieldPreferredIntake, "e.g. Fall 2025"),
		item{kind: kindResume, section: resume, label: "Resume (PDF)", field: profile.FieldResume, edu: -1},
		button("", "Submit Profile", actSubmit, -1),
	)
	return items
}
