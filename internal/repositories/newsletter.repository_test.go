package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterRepository_Subscribe(t *testing.T) {
	db := newTestDB(t)
	repo := NewNewsletter(db)
	ctx := context.Background()

	subscriber, err := repo.Subscribe(ctx, "sub@example.com")
	require.NoError(t, err)
	assert.Greater(t, subscriber.ID, 0)
	assert.Equal(t, "sub@example.com", subscriber.Email)
}

func TestNewsletterRepository_Subscribe_RepeatIsAlreadySubscribed(t *testing.T) {
	db := newTestDB(t)
	repo := NewNewsletter(db)
	ctx := context.Background()

	_, err := repo.Subscribe(ctx, "sub@example.com")
	require.NoError(t, err)

	_, err = repo.Subscribe(ctx, "sub@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "no second row should be created")
}

func TestNewsletterRepository_Subscribe_UniqueIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewNewsletter(db)
	ctx := context.Background()

	_, err := repo.Subscribe(ctx, "sub@example.com")
	require.NoError(t, err)

	// Callers normalize before storage; the NOCASE index still backstops
	// a differently-cased write.
	_, err = repo.Subscribe(ctx, "SUB@EXAMPLE.COM")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestNewsletterRepository_All_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewNewsletter(db)
	ctx := context.Background()

	_, err := repo.Subscribe(ctx, "first@example.com")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = repo.Subscribe(ctx, "second@example.com")
	require.NoError(t, err)

	subscribers, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, subscribers, 2)
	assert.Equal(t, "second@example.com", subscribers[0].Email)
}

func TestStatsRepository_GetStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	leadRepo := NewParentLead(db)
	require.NoError(t, leadRepo.Insert(ctx, testLead("p@example.com")))

	caregiverRepo := NewCaregiverApplication(db)
	require.NoError(t, caregiverRepo.Insert(ctx, testApplication("c@example.com")))

	newsletterRepo := NewNewsletter(db)
	_, err := newsletterRepo.Subscribe(ctx, "n@example.com")
	require.NoError(t, err)

	stale := testLead("stale@example.com")
	stale.CreatedAt = time.Now().AddDate(0, 0, -10)
	require.NoError(t, db.SQL.Create(stale).Error)

	stats, err := NewStats(db).GetStats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalParents)
	assert.EqualValues(t, 1, stats.TotalCaregivers)
	assert.EqualValues(t, 1, stats.TotalSubscribers)
	assert.EqualValues(t, 1, stats.ParentsThisWeek)
	assert.EqualValues(t, 2, stats.ParentsThisMonth)
	assert.EqualValues(t, 1, stats.CaregiversThisWeek)
	assert.EqualValues(t, 1, stats.SubscribersThisWeek)
}
