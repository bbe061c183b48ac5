package database

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// Migrations cover the pieces AutoMigrate does not express: the
// case-insensitive uniqueness on newsletter email and the composite lookup
// indexes backing the 30-day duplicate check.
var Migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_newsletter_email_unique_nocase",
			Up: []string{
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_newsletter_email_nocase
				 ON newsletter_subscribers (email COLLATE NOCASE);`,
			},
			Down: []string{
				`DROP INDEX IF EXISTS idx_newsletter_email_nocase;`,
			},
		},
		{
			Id: "002_intake_duplicate_lookup",
			Up: []string{
				`CREATE INDEX IF NOT EXISTS idx_parent_leads_email_created
				 ON parent_leads (email, created_at);`,
				`CREATE INDEX IF NOT EXISTS idx_caregiver_applications_email_created
				 ON caregiver_applications (email, created_at);`,
			},
			Down: []string{
				`DROP INDEX IF EXISTS idx_parent_leads_email_created;`,
				`DROP INDEX IF EXISTS idx_caregiver_applications_email_created;`,
			},
		},
		{
			Id: "003_intake_created_at",
			Up: []string{
				`CREATE INDEX IF NOT EXISTS idx_parent_leads_created_at
				 ON parent_leads (created_at);`,
				`CREATE INDEX IF NOT EXISTS idx_caregiver_applications_created_at
				 ON caregiver_applications (created_at);`,
			},
			Down: []string{
				`DROP INDEX IF EXISTS idx_parent_leads_created_at;`,
				`DROP INDEX IF EXISTS idx_caregiver_applications_created_at;`,
			},
		},
	},
}

// RunMigrations applies all pending migrations and returns how many ran.
func RunMigrations(db *sql.DB) (int, error) {
	return migrate.Exec(db, "sqlite3", Migrations, migrate.Up)
}
