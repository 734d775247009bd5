// Package gwallet builds Google Wallet generic objects for business cards and
// the "save to wallet" links that carry them.
package gwallet

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/google/uuid"
)

const (
	DefaultClassID = "cardcraft.businesscard"
	defaultColor   = "#B87333"
	language       = "en"
)

// now is a test seam for ids and issued-at timestamps.
var now = time.Now

type TranslatedString struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type LocalizedString struct {
	DefaultValue TranslatedString `json:"defaultValue"`
}

type TextModule struct {
	ID     string `json:"id"`
	Header string `json:"header"`
	Body   string `json:"body"`
}

type URI struct {
	URI         string `json:"uri"`
	Description string `json:"description"`
}

type LinksModule struct {
	URIs []URI `json:"uris"`
}

type Barcode struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// GenericObject is the subset of the Wallet genericObject resource used for cards.
type GenericObject struct {
	ID                 string          `json:"id"`
	ClassID            string          `json:"classId"`
	CardTitle          LocalizedString `json:"cardTitle"`
	Header             LocalizedString `json:"header"`
	Subheader          LocalizedString `json:"subheader"`
	TextModulesData    []TextModule    `json:"textModulesData"`
	LinksModuleData    LinksModule     `json:"linksModuleData"`
	Barcode            Barcode         `json:"barcode"`
	HexBackgroundColor string          `json:"hexBackgroundColor"`
}

func localized(v string) LocalizedString {
	return LocalizedString{DefaultValue: TranslatedString{Language: language, Value: v}}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// NewObject maps card data onto a generic object. Text modules with an empty
// body are dropped; the share url is always the last link.
func NewObject(card models.CardData, url, classID string) GenericObject {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]

	var contact []string
	for _, v := range []string{card.Email, card.Phone, card.Website} {
		if v != "" {
			contact = append(contact, v)
		}
	}

	modules := make([]TextModule, 0, 2)
	for _, m := range []TextModule{
		{ID: "contact", Header: "Contact", Body: strings.Join(contact, "\n")},
		{ID: "location", Header: "Location", Body: card.Location},
	} {
		if m.Body != "" {
			modules = append(modules, m)
		}
	}

	links := make([]URI, 0, 2)
	if w := card.WebsiteURL(); w != "" {
		links = append(links, URI{URI: w, Description: "Website"})
	}
	links = append(links, URI{URI: url, Description: "View Digital Card"})

	return GenericObject{
		ID:                 fmt.Sprintf("cardcraft.%d.%s", now().UnixMilli(), suffix),
		ClassID:            orDefault(classID, DefaultClassID),
		CardTitle:          localized(orDefault(card.Company, "Business Card")),
		Header:             localized(orDefault(card.FullName, "Name")),
		Subheader:          localized(card.JobTitle),
		TextModulesData:    modules,
		LinksModuleData:    LinksModule{URIs: links},
		Barcode:            Barcode{Type: "QR_CODE", Value: url},
		HexBackgroundColor: orDefault(card.AccentColor, defaultColor),
	}
}
