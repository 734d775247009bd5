// Package models defines the card data shared by the pass, vCard and
// storage layers.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// CardData holds the contact fields a user fills in on a card. Every field
// is optional; absent fields decode as empty strings.
type CardData struct {
	FullName    string `json:"fullName,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
}

// WebsiteURL returns the website with an https:// scheme added when it has
// none, or "" when no website is set.
func (c CardData) WebsiteURL() string {
	if c.Website == "" {
		return ""
	}
	if strings.HasPrefix(c.Website, "http") {
		return c.Website
	}
	return "https://" + c.Website
}

// FileStem returns the full name with whitespace runs replaced by
// underscores, or fallback when the name is empty.
func (c CardData) FileStem(fallback string) string {
	if c.FullName == "" {
		return fallback
	}
	return whitespace.ReplaceAllString(c.FullName, "_")
}

func (c *CardData) fields() map[string]*string {
	return map[string]*string{
		"fullName":    &c.FullName,
		"jobTitle":    &c.JobTitle,
		"company":     &c.Company,
		"email":       &c.Email,
		"phone":       &c.Phone,
		"website":     &c.Website,
		"location":    &c.Location,
		"linkedin":    &c.LinkedIn,
		"twitter":     &c.Twitter,
		"accentColor": &c.AccentColor,
	}
}

// UnmarshalJSON accepts any scalar for a card field: numbers and booleans
// are kept as their text, null reads as empty. Objects and arrays are
// rejected.
func (c *CardData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var out CardData
	for key, dst := range out.fields() {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, err := scalarText(v)
		if err != nil {
			return fmt.Errorf("card field %s: %w", key, err)
		}
		*dst = s
	}
	*c = out
	return nil
}

func scalarText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "", nil
	}

	switch v[0] {
	case 'n':
		return "", nil
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[':
		return "", fmt.Errorf("expected a scalar, got %s", v)
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return "", err
		}
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		f, err := n.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}
