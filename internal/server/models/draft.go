package models

import (
	"encoding/json"
	"time"
)

// DraftIDPrefix marks ids handed out for editor drafts.
const DraftIDPrefix = "draft_"

// Draft is an unpublished card that expires after the configured TTL.
type Draft struct {
	ID        string          `db:"id"`
	Data      json.RawMessage `db:"data"`
	Version   int64           `db:"version"`
	CreatedAt time.Time       `db:"created_at"`
	SavedAt   time.Time       `db:"saved_at"`
	ExpiresAt time.Time       `db:"expires_at"`
}

// Expired reports whether the draft is no longer loadable at now.
func (d *Draft) Expired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}
