package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/store"
)

const pdfMIME = "application/pdf"

// submitForm is the multipart profile submission.
type submitForm struct {
	FullName             string `form:"full_name_raw" binding:"required"`
	FatherName           string `form:"father_name_raw"`
	MotherName           string `form:"mother_name_raw"`
	Email                string `form:"email" binding:"required,email"`
	PhoneCountryCode     string `form:"phone_country_code"`
	PhoneNumber          string `form:"phone_number"`
	Nationality          string `form:"nationality"`
	CurrentLivingCountry string `form:"current_living_country"`
	PreferredCountries   string `form:"preferred_countries" binding:"required"`
	BudgetMinBDT         int    `form:"budget_min_bdt" binding:"gte=0"`
	BudgetMaxBDT         int    `form:"budget_max_bdt" binding:"gte=0"`
	PreferredCurrency    string `form:"preferred_currency"`
	PreferredIntake      string `form:"preferred_intake"`
	EducationJSON        string `form:"education_json"`
}

func (s *Server) submitProfile(c *gin.Context) {
	var form submitForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(badRequest(bindingDetail(err, form)))
		return
	}

	education, err := decodeEducation(form.EducationJSON)
	if err != nil {
		c.Error(badRequest(err.Error()))
		return
	}

	resume, err := readResume(c)
	if err != nil {
		c.Error(err)
		return
	}

	rec := &store.ProfileRecord{
		FullName:             strings.TrimSpace(form.FullName),
		FatherName:           strings.TrimSpace(form.FatherName),
		MotherName:           strings.TrimSpace(form.MotherName),
		Email:                strings.TrimSpace(form.Email),
		PhoneCountryCode:     form.PhoneCountryCode,
		PhoneNumber:          form.PhoneNumber,
		Nationality:          form.Nationality,
		CurrentLivingCountry: form.CurrentLivingCountry,
		PreferredCountries:   splitCountries(form.PreferredCountries),
		BudgetMinBDT:         form.BudgetMinBDT,
		BudgetMaxBDT:         form.BudgetMaxBDT,
		PreferredCurrency:    form.PreferredCurrency,
		PreferredIntake:      form.PreferredIntake,
		Education:            education,
		Resume:               resume,
	}
	if len(rec.PreferredCountries) == 0 {
		c.Error(badRequest("preferred_countries is required"))
		return
	}

	id, err := s.profiles.Create(c.Request.Context(), rec)
	if err != nil {
		c.Error(internal("Failed to save profile", err))
		return
	}

	s.logger.Info("profile stored",
		zap.Int64("user_id", id),
		zap.Int("countries", len(rec.PreferredCountries)),
		zap.Int("education", len(rec.Education)),
		zap.Bool("resume", resume != nil))
	c.JSON(http.StatusOK, gin.H{"user_id": id})
}

// splitCountries parses the comma-joined country list.
func splitCountries(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func decodeEducation(raw string) ([]store.EducationRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []store.EducationRecord
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("education_json is not valid JSON: %v", err)
	}
	return out, nil
}

// readResume inspects the optional resume part. Only PDFs are accepted; the
// content is sniffed rather than trusting the part header.
func readResume(c *gin.Context) (*store.ResumeMeta, error) {
	fh, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, badRequest("could not read resume upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, internal("Failed to read resume", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, internal("Failed to read resume", err)
	}
	if !mt.Is(pdfMIME) {
		return nil, badRequest(fmt.Sprintf("Resume must be a PDF file, got %s", mt.String()))
	}

	return &store.ResumeMeta{
		Filename:    fh.Filename,
		ContentType: pdfMIME,
		Size:        fh.Size,
	}, nil
}

// bindingDetail turns the first validation failure into a message naming the
// wire field.
func bindingDetail(err error, form any) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	name := fe.Field()
	if f, ok := reflect.TypeOf(form).FieldByName(fe.StructField()); ok {
		if tag := f.Tag.Get("form"); tag != "" {
			name = tag
		} else if tag := f.Tag.Get("json"); tag != "" {
			name = strings.Split(tag, ",")[0]
		}
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "gt", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	}
	return name + " is invalid"
}
