package validation

import (
	"strings"
	"unicode/utf8"

	. "server/internal/models"
)

// ParentLeadForm is the raw, untrusted form body for POST /api/parents.
type ParentLeadForm struct {
	FirstName      string `form:"first_name"`
	LastName       string `form:"last_name"`
	FullName       string `form:"full_name"`
	Email          string `form:"email"`
	Phone          string `form:"phone"`
	Location       string `form:"location"`
	DueOrAge       string `form:"due_or_age"`
	StartTimeframe string `form:"start_timeframe"`
	Notes          string `form:"notes"`
	Honeypot       string `form:"_hp"`
}

// Validate checks every field and either returns a normalized record ready
// for storage or a ValidationError listing all violations.
func (f ParentLeadForm) Validate() (*ParentLead, *ValidationError) {
	errs := &errorList{}

	fullName := strings.TrimSpace(f.FullName)
	if fullName == "" && f.FirstName != "" && f.LastName != "" {
		fullName = strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)
	}
	checkFullName(errs, fullName)

	email := NormalizeEmail(f.Email)
	checkEmail(errs, email)

	phone := strings.TrimSpace(f.Phone)
	if phone != "" {
		checkPhone(errs, phone)
	}

	location := strings.TrimSpace(f.Location)
	if !isMember(location, ParentLocations) {
		errs.add("location", "Please select a valid location")
	}

	dueOrAge := strings.TrimSpace(f.DueOrAge)
	if dueOrAgeLen := utf8.RuneCountInString(dueOrAge); dueOrAgeLen < 1 || dueOrAgeLen > 60 {
		errs.add("due_or_age", "Please provide due date or child age")
	}

	timeframe := strings.TrimSpace(f.StartTimeframe)
	if !isMember(timeframe, StartTimeframes) {
		errs.add("start_timeframe", "Please select a valid timeframe")
	}

	notes := strings.TrimSpace(f.Notes)
	if utf8.RuneCountInString(notes) > 1000 {
		errs.add("notes", "Notes must be less than 1000 characters")
	}

	checkHoneypot(errs, f.Honeypot)

	if err := errs.toError(); err != nil {
		return nil, err
	}

	lead := &ParentLead{
		FullName:       fullName,
		Email:          email,
		Location:       location,
		DueOrAge:       dueOrAge,
		StartTimeframe: timeframe,
	}
	if phone != "" {
		normalized := NormalizePhone(phone)
		lead.Phone = &normalized
	}
	if notes != "" {
		lead.Notes = &notes
	}

	return lead, nil
}

// CaregiverApplicationForm is the raw, untrusted form body for
// POST /api/caregivers.
type CaregiverApplicationForm struct {
	FirstName         string   `form:"first_name"`
	LastName          string   `form:"last_name"`
	FullName          string   `form:"full_name"`
	Email             string   `form:"email"`
	Phone             string   `form:"phone"`
	BaseLocation      string   `form:"base_location"`
	WillingRegions    []string `form:"willing_regions"`
	ExperienceYears   string   `form:"experience_years"`
	Certifications    []string `form:"certifications"`
	AvailabilityNotes string   `form:"availability_notes"`
	ExperienceSummary string   `form:"experience_summary"`
	Honeypot          string   `form:"_hp"`
}

func (f CaregiverApplicationForm) Validate() (*CaregiverApplication, *ValidationError) {
	errs := &errorList{}

	fullName := strings.TrimSpace(f.FullName)
	if fullName == "" && f.FirstName != "" && f.LastName != "" {
		fullName = strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)
	}
	checkFullName(errs, fullName)

	email := NormalizeEmail(f.Email)
	checkEmail(errs, email)

	phone := strings.TrimSpace(f.Phone)
	if phone == "" {
		errs.add("phone", "Please provide a valid phone number")
	} else {
		checkPhone(errs, phone)
	}

	baseLocation := strings.TrimSpace(f.BaseLocation)
	if locationLen := utf8.RuneCountInString(baseLocation); locationLen < 2 || locationLen > 120 {
		errs.add("base_location", "Base location must be between 2 and 120 characters")
	}

	regions := trimAll(f.WillingRegions)
	if len(regions) == 0 {
		errs.add("willing_regions", "Please select at least one region you're willing to serve")
	}

	experience := strings.TrimSpace(f.ExperienceYears)
	if !isMember(experience, ExperienceBuckets) {
		errs.add("experience_years", "Please select your years of experience")
	}

	certs := trimAll(f.Certifications)
	if len(certs) == 0 {
		errs.add("certifications", "Please select at least one certification")
	}

	availability := strings.TrimSpace(f.AvailabilityNotes)
	if utf8.RuneCountInString(availability) > 280 {
		errs.add("availability_notes", "Availability notes must be less than 280 characters")
	}

	summary := strings.TrimSpace(f.ExperienceSummary)
	if utf8.RuneCountInString(summary) > 600 {
		errs.add("experience_summary", "Experience summary must be less than 600 characters")
	}

	checkHoneypot(errs, f.Honeypot)

	if err := errs.toError(); err != nil {
		return nil, err
	}

	application := &CaregiverApplication{
		FullName:        fullName,
		Email:           email,
		Phone:           NormalizePhone(phone),
		BaseLocation:    baseLocation,
		WillingRegions:  JoinSet(regions),
		ExperienceYears: experience,
		Certifications:  JoinSet(certs),
	}
	if availability != "" {
		application.AvailabilityNotes = &availability
	}
	if summary != "" {
		application.ExperienceSummary = &summary
	}

	return application, nil
}

// NewsletterForm is the body for POST /api/newsletter.
type NewsletterForm struct {
	Email    string `form:"email" json:"email"`
	Honeypot string `form:"_hp"   json:"_hp"`
}

func (f NewsletterForm) Validate() (string, *ValidationError) {
	errs := &errorList{}

	email := NormalizeEmail(f.Email)
	if !emailRegex.MatchString(email) {
		errs.add("email", "Valid email is required")
	}

	checkHoneypot(errs, f.Honeypot)

	if err := errs.toError(); err != nil {
		return "", err
	}

	return email, nil
}
