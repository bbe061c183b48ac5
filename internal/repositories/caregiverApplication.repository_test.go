package repositories

import (
	"context"
	. "server/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApplication(email string) *CaregiverApplication {
	return &CaregiverApplication{
		FullName:        "Mary O'Brien",
		Email:           email,
		Phone:           "5305550101",
		BaseLocation:    "South Lake Tahoe",
		WillingRegions:  JoinSet([]string{"South Lake Tahoe", "Truckee"}),
		ExperienceYears: "2-5",
		Certifications:  JoinSet([]string{"cpr", "doula"}),
	}
}

func TestCaregiverApplicationRepository_Insert_FlagsDuplicateWithinWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaregiverApplication(db)
	ctx := context.Background()

	first := testApplication("repeat@example.com")
	require.NoError(t, repo.Insert(ctx, first))
	assert.False(t, first.IsDuplicate)

	second := testApplication("repeat@example.com")
	require.NoError(t, repo.Insert(ctx, second))
	assert.True(t, second.IsDuplicate)
}

func TestCaregiverApplicationRepository_DuplicateCheckIsPerKind(t *testing.T) {
	db := newTestDB(t)
	leadRepo := NewParentLead(db)
	caregiverRepo := NewCaregiverApplication(db)
	ctx := context.Background()

	lead := testLead("shared@example.com")
	require.NoError(t, leadRepo.Insert(ctx, lead))

	application := testApplication("shared@example.com")
	require.NoError(t, caregiverRepo.Insert(ctx, application))
	assert.False(t, application.IsDuplicate,
		"a parent lead should not flag a caregiver application")
}

func TestCaregiverApplicationRepository_List_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaregiverApplication(db)
	ctx := context.Background()

	doula := testApplication("doula@example.com")
	require.NoError(t, repo.Insert(ctx, doula))

	rn := testApplication("rn@example.com")
	rn.Certifications = JoinSet([]string{"rn_lpn"})
	rn.ExperienceYears = "5+"
	require.NoError(t, repo.Insert(ctx, rn))

	byCert, err := repo.List(ctx, CaregiverApplicationFilter{Certification: "doula"})
	require.NoError(t, err)
	require.Len(t, byCert, 1)
	assert.Equal(t, "doula@example.com", byCert[0].Email)

	byExperience, err := repo.List(ctx, CaregiverApplicationFilter{ExperienceYears: "5+"})
	require.NoError(t, err)
	require.Len(t, byExperience, 1)
	assert.Equal(t, "rn@example.com", byExperience[0].Email)
}

func TestCaregiverApplication_SetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaregiverApplication(db)
	ctx := context.Background()

	certs := []string{"ncs", "cpr", "doula"}
	application := testApplication("sets@example.com")
	application.Certifications = JoinSet(certs)
	application.AvailabilityNotes = stringPtr("Weeknights only")
	require.NoError(t, repo.Insert(ctx, application))

	stored, err := repo.GetByID(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, certs, SplitSet(stored.Certifications))
	require.NotNil(t, stored.AvailabilityNotes)
	assert.Equal(t, "Weeknights only", *stored.AvailabilityNotes)

	restoredRegions := SplitSet(stored.WillingRegions)
	assert.Equal(t, []string{"South Lake Tahoe", "Truckee"}, restoredRegions)
}

func TestCaregiverApplicationRepository_OrderNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaregiverApplication(db)
	ctx := context.Background()

	older := testApplication("older@example.com")
	older.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, db.SQL.Create(older).Error)

	newer := testApplication("newer@example.com")
	newer.CreatedAt = time.Now().Add(-1 * time.Hour)
	require.NoError(t, db.SQL.Create(newer).Error)

	applications, err := repo.List(ctx, CaregiverApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, applications, 2)
	assert.Equal(t, "newer@example.com", applications[0].Email)
}
