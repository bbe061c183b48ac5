package models

type NewsletterSubscriber struct {
	BaseModel
	// Uniqueness is enforced by the NOCASE unique index created in the
	// schema migrations.
	Email string `gorm:"type:varchar(254);not null" json:"email"`
}

// Stats are recomputed on every call; volumes are small enough that no
// caching is warranted.
type Stats struct {
	TotalParents     int64 `json:"totalParents"`
	TotalCaregivers  int64 `json:"totalCaregivers"`
	TotalSubscribers int64 `json:"totalSubscribers"`

	ParentsThisWeek     int64 `json:"parentsThisWeek"`
	CaregiversThisWeek  int64 `json:"caregiversThisWeek"`
	SubscribersThisWeek int64 `json:"subscribersThisWeek"`

	ParentsThisMonth    int64 `json:"parentsThisMonth"`
	CaregiversThisMonth int64 `json:"caregiversThisMonth"`
}
