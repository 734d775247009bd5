package pkpass

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/google/uuid"
)

const (
	DefaultPassTypeIdentifier = "pass.com.cardcraft.businesscard"
	DefaultTeamIdentifier     = "TEAM_ID"
	DefaultOrganization       = "CardCraft"

	BarcodeFormatQR   = "PKBarcodeFormatQR"
	BarcodeEncoding   = "iso-8859-1"
	passFormatVersion = 1
)

var white = RGB{R: 255, G: 255, B: 255}

// now is a test seam for serial number timestamps.
var now = time.Now

// Field is one key/label/value triple of a pass field group.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Generic is the generic pass style body. Group sizes and key order are fixed.
type Generic struct {
	PrimaryFields   []Field `json:"primaryFields"`
	SecondaryFields []Field `json:"secondaryFields"`
	AuxiliaryFields []Field `json:"auxiliaryFields"`
	BackFields      []Field `json:"backFields"`
}

// Barcode describes the QR code printed on the pass.
type Barcode struct {
	Message         string `json:"message"`
	Format          string `json:"format"`
	MessageEncoding string `json:"messageEncoding"`
}

// PassContent is the pass.json document.
type PassContent struct {
	FormatVersion      int       `json:"formatVersion"`
	PassTypeIdentifier string    `json:"passTypeIdentifier"`
	SerialNumber       string    `json:"serialNumber"`
	TeamIdentifier     string    `json:"teamIdentifier"`
	OrganizationName   string    `json:"organizationName"`
	Description        string    `json:"description"`
	LogoText           string    `json:"logoText"`
	ForegroundColor    string    `json:"foregroundColor"`
	BackgroundColor    string    `json:"backgroundColor"`
	LabelColor         string    `json:"labelColor"`
	Generic            Generic   `json:"generic"`
	Barcode            Barcode   `json:"barcode"`
	Barcodes           []Barcode `json:"barcodes"`
}

// Identity carries the Apple identifiers stamped into every pass.
type Identity struct {
	PassTypeIdentifier string
	TeamIdentifier     string
}

func (id Identity) withDefaults() Identity {
	if id.PassTypeIdentifier == "" {
		id.PassTypeIdentifier = DefaultPassTypeIdentifier
	}
	if id.TeamIdentifier == "" {
		id.TeamIdentifier = DefaultTeamIdentifier
	}
	return id
}

// NewSerialNumber returns "card-<unix millis>-<9 random chars>".
func NewSerialNumber() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("card-%d-%s", now().UnixMilli(), suffix)
}

// NewPassContent lays out card fields into the fixed generic pass shape.
// Absent card fields become empty strings; nothing is validated.
func NewPassContent(card models.CardData, url string, id Identity) PassContent {
	id = id.withDefaults()

	organization := card.Company
	if organization == "" {
		organization = DefaultOrganization
	}
	description := "Business Card"
	if card.FullName != "" {
		description = card.FullName + "'s Business Card"
	}

	barcode := Barcode{Message: url, Format: BarcodeFormatQR, MessageEncoding: BarcodeEncoding}

	return PassContent{
		FormatVersion:      passFormatVersion,
		PassTypeIdentifier: id.PassTypeIdentifier,
		SerialNumber:       NewSerialNumber(),
		TeamIdentifier:     id.TeamIdentifier,
		OrganizationName:   organization,
		Description:        description,
		LogoText:           card.Company,
		ForegroundColor:    white.String(),
		BackgroundColor:    DecodeColor(card.AccentColor).String(),
		LabelColor:         white.String(),
		Generic: Generic{
			PrimaryFields: []Field{
				{Key: "name", Label: "NAME", Value: card.FullName},
			},
			SecondaryFields: []Field{
				{Key: "title", Label: "TITLE", Value: card.JobTitle},
				{Key: "company", Label: "COMPANY", Value: card.Company},
			},
			AuxiliaryFields: []Field{
				{Key: "email", Label: "EMAIL", Value: card.Email},
				{Key: "phone", Label: "PHONE", Value: card.Phone},
			},
			BackFields: []Field{
				{Key: "website", Label: "Website", Value: card.Website},
				{Key: "location", Label: "Location", Value: card.Location},
				{Key: "linkedin", Label: "LinkedIn", Value: card.LinkedIn},
				{Key: "twitter", Label: "Twitter/X", Value: card.Twitter},
			},
		},
		Barcode:  barcode,
		Barcodes: []Barcode{barcode},
	}
}
