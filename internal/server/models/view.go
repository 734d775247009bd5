package models

import "time"

// Values stored when the request carries no visitor information.
const (
	UnknownOrigin  = "Unknown"
	DirectReferrer = "Direct"
)

// Tracked interaction kinds. Unknown actions are stored but not tallied.
const (
	ActionView         = "view"
	ActionEmailClick   = "email_click"
	ActionPhoneClick   = "phone_click"
	ActionWebsiteClick = "website_click"
	ActionSocialClick  = "social_click"
)

// TrackedActions lists the actions analytics reports counts for.
var TrackedActions = []string{ActionView, ActionEmailClick, ActionPhoneClick, ActionWebsiteClick, ActionSocialClick}

// View is one recorded interaction with a shared card.
type View struct {
	ID        int64     `db:"id" json:"-"`
	CardID    string    `db:"card_id" json:"cardId"`
	Action    string    `db:"action" json:"action"`
	Country   string    `db:"country" json:"country"`
	City      string    `db:"city" json:"city"`
	Device    string    `db:"device" json:"device"`
	Referrer  string    `db:"referrer" json:"referrer"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}
