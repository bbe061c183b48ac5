package models

import "strings"

var ExperienceBuckets = []string{"<1", "1-2", "2-5", "5+"}

// SetDelimiter joins the willing_regions and certifications sets into their
// stored text form. Splitting and joining must use the same delimiter so the
// sets round-trip.
const SetDelimiter = ", "

type CaregiverApplication struct {
	BaseModel
	FullName          string  `gorm:"type:varchar(100);not null"     json:"full_name"`
	Email             string  `gorm:"type:varchar(254);not null"     json:"email"`
	Phone             string  `gorm:"type:varchar(20);not null"      json:"phone"`
	BaseLocation      string  `gorm:"type:varchar(120);not null"     json:"base_location"`
	WillingRegions    string  `gorm:"type:text;not null"             json:"willing_regions"`
	ExperienceYears   string  `gorm:"type:varchar(10);not null"      json:"experience_years"`
	Certifications    string  `gorm:"type:text;not null"             json:"certifications"`
	AvailabilityNotes *string `gorm:"type:varchar(280)"              json:"availability_notes,omitempty"`
	ExperienceSummary *string `gorm:"type:text"                      json:"experience_summary,omitempty"`
	UserAgent         string  `gorm:"type:text"                      json:"user_agent,omitempty"`
	IPAddr            string  `gorm:"type:varchar(64)"               json:"ip_addr,omitempty"`
	IsDuplicate       bool    `gorm:"not null;default:false"         json:"is_duplicate"`
}

type CaregiverApplicationFilter struct {
	StartDate       string // inclusive, ISO-8601 date
	EndDate         string // inclusive, ISO-8601 date
	ExperienceYears string // exact bucket match
	Certification   string // substring match
	Limit           int
}

// JoinSet serializes a set of values for storage.
func JoinSet(values []string) string {
	return strings.Join(values, SetDelimiter)
}

// SplitSet recovers the stored set. Ordering is preserved but not
// significant.
func SplitSet(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, SetDelimiter)
}
