package gwallet

import (
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixNow(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return ts }
}

func TestNewObject_FullCard(t *testing.T) {
	fixNow(t, time.UnixMilli(1700000000000))

	card := models.CardData{
		FullName:    "Jane Cho",
		JobTitle:    "Designer",
		Company:     "Acme",
		Email:       "jane@acme.com",
		Phone:       "+1 555 0100",
		Website:     "acme.com",
		Location:    "Berlin",
		AccentColor: "#112233",
	}
	obj := NewObject(card, "https://cardcraft.pages.dev/c/abc", "")

	assert.Regexp(t, regexp.MustCompile(`^cardcraft\.1700000000000\.[0-9a-f]{9}$`), obj.ID)
	assert.Equal(t, DefaultClassID, obj.ClassID)
	assert.Equal(t, "Acme", obj.CardTitle.DefaultValue.Value)
	assert.Equal(t, "en", obj.CardTitle.DefaultValue.Language)
	assert.Equal(t, "Jane Cho", obj.Header.DefaultValue.Value)
	assert.Equal(t, "Designer", obj.Subheader.DefaultValue.Value)

	require.Len(t, obj.TextModulesData, 2)
	assert.Equal(t, TextModule{ID: "contact", Header: "Contact", Body: "jane@acme.com\n+1 555 0100\nacme.com"}, obj.TextModulesData[0])
	assert.Equal(t, TextModule{ID: "location", Header: "Location", Body: "Berlin"}, obj.TextModulesData[1])

	assert.Equal(t, []URI{
		{URI: "https://acme.com", Description: "Website"},
		{URI: "https://cardcraft.pages.dev/c/abc", Description: "View Digital Card"},
	}, obj.LinksModuleData.URIs)
	assert.Equal(t, Barcode{Type: "QR_CODE", Value: "https://cardcraft.pages.dev/c/abc"}, obj.Barcode)
	assert.Equal(t, "#112233", obj.HexBackgroundColor)
}

func TestNewObject_EmptyCard(t *testing.T) {
	obj := NewObject(models.CardData{}, "https://x", "issuer.class")

	assert.Equal(t, "issuer.class", obj.ClassID)
	assert.Equal(t, "Business Card", obj.CardTitle.DefaultValue.Value)
	assert.Equal(t, "Name", obj.Header.DefaultValue.Value)
	assert.Equal(t, "", obj.Subheader.DefaultValue.Value)
	assert.Empty(t, obj.TextModulesData)
	assert.Equal(t, []URI{{URI: "https://x", Description: "View Digital Card"}}, obj.LinksModuleData.URIs)
	assert.Equal(t, "#B87333", obj.HexBackgroundColor)
}

func TestNewObject_UniqueIDs(t *testing.T) {
	a := NewObject(models.CardData{}, "https://x", "")
	b := NewObject(models.CardData{}, "https://x", "")
	assert.NotEqual(t, a.ID, b.ID)
}
