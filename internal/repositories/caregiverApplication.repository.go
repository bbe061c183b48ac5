package repositories

import (
	"context"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"time"

	"gorm.io/gorm"
)

type CaregiverApplicationRepository interface {
	Insert(ctx context.Context, application *CaregiverApplication) error
	GetByID(ctx context.Context, id int) (*CaregiverApplication, error)
	List(ctx context.Context, filter CaregiverApplicationFilter) ([]*CaregiverApplication, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type caregiverApplicationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCaregiverApplication(db database.DB) CaregiverApplicationRepository {
	return &caregiverApplicationRepository{
		db:  db,
		log: logger.New("caregiverApplicationRepository"),
	}
}

func (r *caregiverApplicationRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.SQLWithContext(ctx)
}

func (r *caregiverApplicationRepository) Insert(ctx context.Context, application *CaregiverApplication) error {
	log := r.log.Function("Insert")

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		windowStart := time.Now().Add(-DUPLICATE_WINDOW)
		if err := tx.Model(&CaregiverApplication{}).
			Where("email = ? AND created_at >= ?", application.Email, windowStart).
			Count(&existing).Error; err != nil {
			return err
		}

		application.IsDuplicate = existing > 0

		return tx.Create(application).Error
	})
	if err != nil {
		return log.Err("failed to insert caregiver application", err, "email", application.Email)
	}

	if application.IsDuplicate {
		log.Info("duplicate caregiver application flagged",
			"email", application.Email, "id", application.ID)
	}

	return nil
}

func (r *caregiverApplicationRepository) GetByID(ctx context.Context, id int) (*CaregiverApplication, error) {
	log := r.log.Function("GetByID")

	var application CaregiverApplication
	if err := r.getDB(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get caregiver application by id", err, "id", id)
	}

	return &application, nil
}

func (r *caregiverApplicationRepository) List(ctx context.Context, filter CaregiverApplicationFilter) ([]*CaregiverApplication, error) {
	log := r.log.Function("List")

	query := r.getDB(ctx).Model(&CaregiverApplication{})
	query = applyDateBounds(query, filter.StartDate, filter.EndDate)
	if filter.ExperienceYears != "" {
		query = query.Where("experience_years = ?", filter.ExperienceYears)
	}
	if filter.Certification != "" {
		query = query.Where("certifications LIKE ?", "%"+filter.Certification+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var applications []*CaregiverApplication
	if err := query.Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, log.Err("failed to list caregiver applications", err, "filter", filter)
	}

	return applications, nil
}

func (r *caregiverApplicationRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&CaregiverApplication{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count caregiver applications", err)
	}

	return count, nil
}

func (r *caregiverApplicationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	log := r.log.Function("CountSince")

	var count int64
	if err := r.getDB(ctx).Model(&CaregiverApplication{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count recent caregiver applications", err, "since", since)
	}

	return count, nil
}
