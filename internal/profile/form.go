package profile

import "slices"

// Form owns the draft for one form session. Every update installs a fresh
// copy, so a Draft handed out earlier never changes under its holder.
//
// Form is not safe for concurrent use; it belongs to the UI update loop.
type Form struct {
	draft Draft
}

// NewForm creates a Form starting from initial.
func NewForm(initial Draft) *Form {
	return &Form{draft: initial.clone()}
}

// Draft returns a snapshot of the current draft.
func (f *Form) Draft() Draft {
	return f.draft.clone()
}

func (f *Form) update(fn func(d *Draft)) {
	next := f.draft.clone()
	fn(&next)
	f.draft = next
}

// Set stores value in scalar field field. Budget fields take the leading
// integer of value, or 0.
func (f *Form) Set(field Field, value string) {
	f.update(func(d *Draft) { d.set(field, value) })
}

// ToggleCountry adds country to the preferred set, or removes it if present.
func (f *Form) ToggleCountry(country string) {
	f.update(func(d *Draft) {
		if i := slices.Index(d.PreferredCountries, country); i >= 0 {
			d.PreferredCountries = slices.Delete(d.PreferredCountries, i, i+1)
			return
		}
		d.PreferredCountries = append(d.PreferredCountries, country)
	})
}

// AddEducation appends a blank education entry.
func (f *Form) AddEducation() {
	f.update(func(d *Draft) {
		d.Education = append(d.Education, EducationEntry{})
	})
}

// RemoveEducation deletes entry i. The last remaining entry cannot be
// removed, and out-of-range indexes are ignored.
func (f *Form) RemoveEducation(i int) {
	if i < 0 || i >= len(f.draft.Education) || len(f.draft.Education) <= 1 {
		return
	}
	f.update(func(d *Draft) {
		d.Education = slices.Delete(d.Education, i, i+1)
	})
}

// UpdateEducation sets column field of entry i.
func (f *Form) UpdateEducation(i int, field EducationField, value string) {
	if i < 0 || i >= len(f.draft.Education) {
		return
	}
	f.update(func(d *Draft) {
		d.Education[i].set(field, value)
	})
}

// SetResume attaches the file at path.
func (f *Form) SetResume(path string) {
	f.Set(FieldResume, path)
}

// ClearResume detaches the resume.
func (f *Form) ClearResume() {
	f.Set(FieldResume, "")
}
