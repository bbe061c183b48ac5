package repositories

import (
	"context"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"time"
)

type StatsRepository interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type statsRepository struct {
	db  database.DB
	log logger.Logger
}

func NewStats(db database.DB) StatsRepository {
	return &statsRepository{
		db:  db,
		log: logger.New("statsRepository"),
	}
}

// GetStats recomputes the aggregate counts on every call. Volumes are in
// the hundreds-to-low-thousands range, so eight indexed counts per call is
// fine without caching.
func (r *statsRepository) GetStats(ctx context.Context) (*Stats, error) {
	log := r.log.Function("GetStats")

	db := r.db.SQLWithContext(ctx)
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	stats := &Stats{}

	counts := []struct {
		model any
		since time.Time
		dest  *int64
	}{
		{&ParentLead{}, time.Time{}, &stats.TotalParents},
		{&CaregiverApplication{}, time.Time{}, &stats.TotalCaregivers},
		{&NewsletterSubscriber{}, time.Time{}, &stats.TotalSubscribers},
		{&ParentLead{}, weekAgo, &stats.ParentsThisWeek},
		{&CaregiverApplication{}, weekAgo, &stats.CaregiversThisWeek},
		{&NewsletterSubscriber{}, weekAgo, &stats.SubscribersThisWeek},
		{&ParentLead{}, monthAgo, &stats.ParentsThisMonth},
		{&CaregiverApplication{}, monthAgo, &stats.CaregiversThisMonth},
	}

	for _, c := range counts {
		query := db.Model(c.model)
		if !c.since.IsZero() {
			query = query.Where("created_at >= ?", c.since)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, log.Err("failed to compute stats", err)
		}
	}

	return stats, nil
}
