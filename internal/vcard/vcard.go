// Package vcard renders card data as a vCard 3.0 contact.
package vcard

import (
	"strings"

	"github.com/dmitrijs2005/cardcraft/internal/models"
)

const ContentType = "text/vcard"

// structuredName returns the N property value: family name last word,
// everything before it as given names.
func structuredName(fullName string) string {
	parts := strings.Split(strings.TrimSpace(fullName), " ")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		return last + ";" + strings.Join(parts[:len(parts)-1], " ") + ";;;"
	}
	return fullName + ";;;;"
}

// Generate returns the vCard text with CRLF line breaks and no trailing break.
// Values are written as given, without escaping.
func Generate(card models.CardData) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + card.FullName,
		"N:" + structuredName(card.FullName),
		"TITLE:" + card.JobTitle,
		"ORG:" + card.Company,
		"EMAIL:" + card.Email,
		"TEL:" + card.Phone,
		"URL:" + card.WebsiteURL(),
		"ADR:;;" + card.Location + ";;;;",
		"END:VCARD",
	}
	return strings.Join(lines, "\r\n")
}
