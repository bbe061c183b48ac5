package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrAlreadySubscribed marks a repeat signup. Callers treat it as success:
// the subscriber list already contains the address, which is the outcome
// the user asked for.
var ErrAlreadySubscribed = errors.New("email already subscribed")

type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) (*NewsletterSubscriber, error)
	All(ctx context.Context) ([]*NewsletterSubscriber, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type newsletterRepository struct {
	db  database.DB
	log logger.Logger
}

func NewNewsletter(db database.DB) NewsletterRepository {
	return &newsletterRepository{
		db:  db,
		log: logger.New("newsletterRepository"),
	}
}

func (r *newsletterRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.SQLWithContext(ctx)
}

func (r *newsletterRepository) Subscribe(ctx context.Context, email string) (*NewsletterSubscriber, error) {
	log := r.log.Function("Subscribe")

	subscriber := &NewsletterSubscriber{Email: email}
	if err := r.getDB(ctx).Create(subscriber).Error; err != nil {
		if isUniqueViolation(err) {
			log.Info("email already subscribed", "email", email)
			return nil, ErrAlreadySubscribed
		}
		return nil, log.Err("failed to add newsletter subscriber", err, "email", email)
	}

	return subscriber, nil
}

func (r *newsletterRepository) All(ctx context.Context) ([]*NewsletterSubscriber, error) {
	log := r.log.Function("All")

	var subscribers []*NewsletterSubscriber
	if err := r.getDB(ctx).Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, log.Err("failed to list newsletter subscribers", err)
	}

	return subscribers, nil
}

func (r *newsletterRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&NewsletterSubscriber{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count newsletter subscribers", err)
	}

	return count, nil
}

func (r *newsletterRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	log := r.log.Function("CountSince")

	var count int64
	if err := r.getDB(ctx).Model(&NewsletterSubscriber{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count recent newsletter subscribers", err, "since", since)
	}

	return count, nil
}

// isUniqueViolation covers both GORM's translated error and the raw SQLite
// message, since the unique index is created outside of GORM's migrator.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
