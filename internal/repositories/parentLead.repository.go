package repositories

import (
	"context"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"time"

	"gorm.io/gorm"
)

// DUPLICATE_WINDOW is the trailing window within which a repeat email of
// the same record kind is flagged. The flag is advisory triage data; the
// row is still stored.
const DUPLICATE_WINDOW = 30 * 24 * time.Hour

type ParentLeadRepository interface {
	Insert(ctx context.Context, lead *ParentLead) error
	GetByID(ctx context.Context, id int) (*ParentLead, error)
	List(ctx context.Context, filter ParentLeadFilter) ([]*ParentLead, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type parentLeadRepository struct {
	db  database.DB
	log logger.Logger
}

func NewParentLead(db database.DB) ParentLeadRepository {
	return &parentLeadRepository{
		db:  db,
		log: logger.New("parentLeadRepository"),
	}
}

func (r *parentLeadRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.SQLWithContext(ctx)
}

// Insert stores the lead and computes its duplicate flag in one
// transaction. The count and the insert are atomic within this process;
// cross-process racing could under-flag, which is acceptable because the
// flag never rejects anything.
func (r *parentLeadRepository) Insert(ctx context.Context, lead *ParentLead) error {
	log := r.log.Function("Insert")

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		windowStart := time.Now().Add(-DUPLICATE_WINDOW)
		if err := tx.Model(&ParentLead{}).
			Where("email = ? AND created_at >= ?", lead.Email, windowStart).
			Count(&existing).Error; err != nil {
			return err
		}

		lead.IsDuplicate = existing > 0

		return tx.Create(lead).Error
	})
	if err != nil {
		return log.Err("failed to insert parent lead", err, "email", lead.Email)
	}

	if lead.IsDuplicate {
		log.Info("duplicate parent lead flagged", "email", lead.Email, "id", lead.ID)
	}

	return nil
}

func (r *parentLeadRepository) GetByID(ctx context.Context, id int) (*ParentLead, error) {
	log := r.log.Function("GetByID")

	var lead ParentLead
	if err := r.getDB(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get parent lead by id", err, "id", id)
	}

	return &lead, nil
}

// List returns leads matching every set filter field, newest first. The
// ordering is load-bearing for the recent-submissions views.
func (r *parentLeadRepository) List(ctx context.Context, filter ParentLeadFilter) ([]*ParentLead, error) {
	log := r.log.Function("List")

	query := r.getDB(ctx).Model(&ParentLead{})
	query = applyDateBounds(query, filter.StartDate, filter.EndDate)
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var leads []*ParentLead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, log.Err("failed to list parent leads", err, "filter", filter)
	}

	return leads, nil
}

func (r *parentLeadRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&ParentLead{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count parent leads", err)
	}

	return count, nil
}

func (r *parentLeadRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	log := r.log.Function("CountSince")

	var count int64
	if err := r.getDB(ctx).Model(&ParentLead{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count recent parent leads", err, "since", since)
	}

	return count, nil
}
