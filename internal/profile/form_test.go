package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDraft(t *testing.T) {
	d := DefaultDraft()

	assert.Equal(t, "+880", d.PhoneCountryCode)
	assert.Equal(t, "Bangladesh", d.Nationality)
	assert.Equal(t, "Bangladesh", d.CurrentLivingCountry)
	assert.Equal(t, 500000, d.BudgetMinBDT)
	assert.Equal(t, 2000000, d.BudgetMaxBDT)
	assert.Equal(t, "BDT", d.PreferredCurrency)
	assert.Empty(t, d.PreferredCountries)
	require.Len(t, d.Education, 1)
	assert.Equal(t, EducationEntry{Level: "HSC", Field: "Science"}, d.Education[0])
}

func TestForm_Set(t *testing.T) {
	f := NewForm(DefaultDraft())

	f.Set(FieldFullName, "Rahim Uddin")
	f.Set(FieldEmail, "rahim@example.com")
	f.Set(FieldPreferredIntake, "Fall 2026")

	d := f.Draft()
	assert.Equal(t, "Rahim Uddin", d.FullName)
	assert.Equal(t, "rahim@example.com", d.Email)
	assert.Equal(t, "Fall 2026", d.PreferredIntake)
	assert.Equal(t, "Rahim Uddin", d.Value(FieldFullName))
}

func TestForm_SetBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "750000", 750000},
		{"trailing text", "1200000 taka", 1200000},
		{"empty", "", 0},
		{"not a number", "abc", 0},
		{"negative", "-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm(DefaultDraft())
			f.Set(FieldBudgetMin, tt.input)
			assert.Equal(t, tt.want, f.Draft().BudgetMinBDT)
		})
	}
}

func TestForm_ToggleCountry(t *testing.T) {
	f := NewForm(DefaultDraft())

	f.ToggleCountry("Germany")
	f.ToggleCountry("Canada")
	assert.Equal(t, []string{"Germany", "Canada"}, f.Draft().PreferredCountries)

	f.ToggleCountry("Germany")
	assert.Equal(t, []string{"Canada"}, f.Draft().PreferredCountries)
	assert.False(t, f.Draft().HasCountry("Germany"))
	assert.True(t, f.Draft().HasCountry("Canada"))
}

func TestForm_EducationLifecycle(t *testing.T) {
	f := NewForm(DefaultDraft())

	f.AddEducation()
	require.Len(t, f.Draft().Education, 2)
	assert.Equal(t, EducationEntry{}, f.Draft().Education[1])

	f.UpdateEducation(1, EduLevel, "Bachelor")
	f.UpdateEducation(1, EduInstitution, "BUET")
	f.UpdateEducation(1, EduGPA, "3.75")
	assert.Equal(t, "Bachelor", f.Draft().Education[1].Get(EduLevel))
	assert.Equal(t, "BUET", f.Draft().Education[1].Get(EduInstitution))
	assert.Equal(t, "3.75", f.Draft().Education[1].Get(EduGPA))

	f.RemoveEducation(0)
	require.Len(t, f.Draft().Education, 1)
	assert.Equal(t, "Bachelor", f.Draft().Education[0].Level)
}

func TestForm_RemoveLastEducationIsIgnored(t *testing.T) {
	f := NewForm(DefaultDraft())

	f.RemoveEducation(0)
	assert.Len(t, f.Draft().Education, 1)

	f.AddEducation()
	f.RemoveEducation(5)
	f.RemoveEducation(-1)
	assert.Len(t, f.Draft().Education, 2)
}

func TestForm_UpdateEducationOutOfRange(t *testing.T) {
	f := NewForm(DefaultDraft())
	f.UpdateEducation(3, EduLevel, "PhD")
	assert.Equal(t, DefaultDraft().Education, f.Draft().Education)
}

func TestForm_SnapshotsAreIndependent(t *testing.T) {
	f := NewForm(DefaultDraft())
	f.ToggleCountry("Japan")
	before := f.Draft()

	f.ToggleCountry("Australia")
	f.UpdateEducation(0, EduLevel, "SSC")
	before.PreferredCountries[0] = "mutated"

	assert.Equal(t, "HSC", before.Education[0].Level)
	assert.Equal(t, []string{"Japan", "Australia"}, f.Draft().PreferredCountries)
}

func TestForm_Resume(t *testing.T) {
	f := NewForm(DefaultDraft())

	f.SetResume("/tmp/cv.pdf")
	assert.Equal(t, "/tmp/cv.pdf", f.Draft().ResumePath)

	f.ClearResume()
	assert.Empty(t, f.Draft().ResumePath)
}

func TestDestinations(t *testing.T) {
	got := Destinations()
	require.Len(t, got, destinationCount)
	assert.Equal(t, Countries[:destinationCount], got)

	got[0] = "changed"
	assert.NotEqual(t, "changed", Countries[0])
}

func TestCompleteness(t *testing.T) {
	assert.Zero(t, Completeness(DefaultDraft()))

	d := validDraft()
	assert.InDelta(t, 3.0/9.0, Completeness(d), 1e-9)

	d.FatherName = "Karim"
	d.MotherName = "Amina"
	d.PhoneNumber = "1712345678"
	d.PreferredIntake = "Fall 2026"
	d.Education[0].Institution = "Notre Dame College"
	d.ResumePath = "/tmp/cv.pdf"
	assert.InDelta(t, 1.0, Completeness(d), 1e-9)
}
