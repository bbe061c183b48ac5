package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"server/internal/logger"
	. "server/internal/models"
)

// Column headers for each export kind. Order is part of the contract with
// the spreadsheets the admin already uses.
var (
	parentExportHeader = []string{
		"ID", "Date", "Name", "Email", "Phone", "Location",
		"Due/Age", "Start Timeframe", "Notes", "Duplicate",
	}
	caregiverExportHeader = []string{
		"ID", "Date", "Name", "Email", "Phone", "Base Location",
		"Willing Regions", "Experience", "Certifications",
		"Availability", "Experience Summary", "Duplicate",
	}
	newsletterExportHeader = []string{"ID", "Email", "Created At"}
)

// ExportService renders filtered record sets as CSV. encoding/csv handles
// quoting of commas, quotes, and newlines in the freeform fields; rows come
// out in the same newest-first order as the underlying query.
type ExportService struct {
	log logger.Logger
}

func NewExport() *ExportService {
	return &ExportService{
		log: logger.New("ExportService"),
	}
}

func (s *ExportService) ParentLeadsCSV(leads []*ParentLead) ([]byte, error) {
	log := s.log.Function("ParentLeadsCSV")

	rows := make([][]string, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, []string{
			strconv.Itoa(lead.ID),
			lead.CreatedAt.Format(time.RFC3339),
			lead.FullName,
			lead.Email,
			stringValue(lead.Phone),
			lead.Location,
			lead.DueOrAge,
			lead.StartTimeframe,
			stringValue(lead.Notes),
			boolYesNo(lead.IsDuplicate),
		})
	}

	data, err := writeCSV(parentExportHeader, rows)
	if err != nil {
		return nil, log.Err("failed to write parent leads CSV", err)
	}
	return data, nil
}

func (s *ExportService) CaregiverApplicationsCSV(applications []*CaregiverApplication) ([]byte, error) {
	log := s.log.Function("CaregiverApplicationsCSV")

	rows := make([][]string, 0, len(applications))
	for _, application := range applications {
		rows = append(rows, []string{
			strconv.Itoa(application.ID),
			application.CreatedAt.Format(time.RFC3339),
			application.FullName,
			application.Email,
			application.Phone,
			application.BaseLocation,
			application.WillingRegions,
			application.ExperienceYears,
			application.Certifications,
			stringValue(application.AvailabilityNotes),
			stringValue(application.ExperienceSummary),
			boolYesNo(application.IsDuplicate),
		})
	}

	data, err := writeCSV(caregiverExportHeader, rows)
	if err != nil {
		return nil, log.Err("failed to write caregiver applications CSV", err)
	}
	return data, nil
}

func (s *ExportService) NewsletterCSV(subscribers []*NewsletterSubscriber) ([]byte, error) {
	log := s.log.Function("NewsletterCSV")

	rows := make([][]string, 0, len(subscribers))
	for _, subscriber := range subscribers {
		rows = append(rows, []string{
			strconv.Itoa(subscriber.ID),
			subscriber.Email,
			subscriber.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := writeCSV(newsletterExportHeader, rows)
	if err != nil {
		return nil, log.Err("failed to write newsletter CSV", err)
	}
	return data, nil
}

// ExportFilename builds the dated download name for a record kind.
func ExportFilename(kind string) string {
	return fmt.Sprintf("tahoe_night_nurse_%s_%s.csv", kind, time.Now().Format("2006-01-02"))
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func boolYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
