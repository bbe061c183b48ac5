package models

import (
	"time"
)

// BaseModel carries the identity and server-assigned creation timestamp
// shared by every intake record. Intake rows are append-only, so there is
// no UpdatedAt/DeletedAt.
type BaseModel struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"                    json:"createdAt"`
}
