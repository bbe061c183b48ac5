package repositories

import (
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// applyDateBounds narrows a query to the inclusive [startDate, endDate]
// range. Bounds are ISO-8601 dates; the end bound extends to the end of its
// day so a single-day range matches that whole day. Unparseable values are
// ignored rather than failing the listing.
func applyDateBounds(query *gorm.DB, startDate, endDate string) *gorm.DB {
	if startDate != "" {
		if start, err := time.Parse(dateLayout, startDate); err == nil {
			query = query.Where("created_at >= ?", start)
		}
	}
	if endDate != "" {
		if end, err := time.Parse(dateLayout, endDate); err == nil {
			query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
		}
	}
	return query
}
