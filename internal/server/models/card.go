// Package models holds the server-side persistence records.
package models

import (
	"encoding/json"
	"time"
)

// Card is a published business card. Data is the card JSON as submitted
// by the editor; the bookkeeping columns live beside it.
type Card struct {
	ID        string          `db:"id"`
	Data      json.RawMessage `db:"data"`
	Version   int64           `db:"version"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
