package models

// Locations a parent lead can select. Any other value is a validation
// failure, never a silent coercion.
var ParentLocations = []string{
	"South Lake Tahoe",
	"North Lake Tahoe",
	"Truckee",
	"Visiting (not local)",
	"Other (in region)",
}

var StartTimeframes = []string{
	"ASAP",
	"Next 2-4 weeks",
	"1-3 months",
	"3+ months",
	"Just researching",
}

type ParentLead struct {
	BaseModel
	FullName       string  `gorm:"type:varchar(100);not null"      json:"full_name"`
	Email          string  `gorm:"type:varchar(254);not null"      json:"email"`
	Phone          *string `gorm:"type:varchar(20)"                json:"phone"`
	Location       string  `gorm:"type:varchar(40);not null"       json:"location"`
	DueOrAge       string  `gorm:"type:varchar(60);not null"       json:"due_or_age"`
	StartTimeframe string  `gorm:"type:varchar(20);not null"       json:"start_timeframe"`
	Notes          *string `gorm:"type:text"                       json:"notes,omitempty"`
	UserAgent      string  `gorm:"type:text"                       json:"user_agent,omitempty"`
	IPAddr         string  `gorm:"type:varchar(64)"                json:"ip_addr,omitempty"`
	IsDuplicate    bool    `gorm:"not null;default:false"          json:"is_duplicate"`
}

type ParentLeadFilter struct {
	StartDate string // inclusive, ISO-8601 date
	EndDate   string // inclusive, ISO-8601 date
	Location  string // exact match
	Limit     int
}
