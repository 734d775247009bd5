package pkpass

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSigner struct {
	sig  []byte
	err  error
	seen []byte
}

func (s *stubSigner) Sign(manifest []byte) ([]byte, error) {
	s.seen = manifest
	return s.sig, s.err
}

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = b
	}
	return out
}

func TestBuilder_Build_JaneCho(t *testing.T) {
	card := models.CardData{
		FullName:    "Jane Cho",
		JobTitle:    "Designer",
		Company:     "Acme",
		Email:       "jane@acme.com",
		AccentColor: "#B87333",
	}

	p, err := NewBuilder().Build(card, "https://cardcraft.pages.dev/c/abc123")
	require.NoError(t, err)

	assert.False(t, p.Signed)
	assert.Equal(t, []string{"pass.json", "manifest.json"}, p.Files)
	assert.NotEmpty(t, p.SerialNumber)

	_, central, count := walkZip(t, p.Data)
	assert.Equal(t, uint16(2), count)
	require.Len(t, central, 2)
	assert.Equal(t, "pass.json", central[0].name)
	assert.Equal(t, "manifest.json", central[1].name)

	files := readArchive(t, p.Data)

	var pass struct {
		SerialNumber    string `json:"serialNumber"`
		BackgroundColor string `json:"backgroundColor"`
		Generic         struct {
			PrimaryFields []Field `json:"primaryFields"`
		} `json:"generic"`
	}
	require.NoError(t, json.Unmarshal(files["pass.json"], &pass))
	assert.Equal(t, "Jane Cho", pass.Generic.PrimaryFields[0].Value)
	assert.Equal(t, "rgb(184, 115, 51)", pass.BackgroundColor)
	assert.Equal(t, p.SerialNumber, pass.SerialNumber)

	var manifest map[string]string
	require.NoError(t, json.Unmarshal(files["manifest.json"], &manifest))
	assert.Equal(t, map[string]string{"pass.json": SHA1Hex(files["pass.json"])}, manifest)
}

func TestBuilder_Build_EmptyCard(t *testing.T) {
	p, err := NewBuilder().Build(models.CardData{}, "https://cardcraft.pages.dev")
	require.NoError(t, err)

	files := readArchive(t, p.Data)

	var pc PassContent
	require.NoError(t, json.Unmarshal(files["pass.json"], &pc))
	assert.Equal(t, "rgb(184, 115, 51)", pc.BackgroundColor)
	assert.Equal(t, "", pc.Generic.PrimaryFields[0].Value)
	for _, f := range pc.Generic.BackFields {
		assert.Equal(t, "", f.Value)
	}
}

func TestBuilder_Assemble_Deterministic(t *testing.T) {
	pc := NewPassContent(models.CardData{FullName: "A"}, "https://x", Identity{})
	b := NewBuilder()

	p1, err := b.Assemble(pc)
	require.NoError(t, err)
	p2, err := b.Assemble(pc)
	require.NoError(t, err)

	assert.Equal(t, p1.Data, p2.Data)
}

func TestBuilder_PassJSONIsIndented(t *testing.T) {
	pc := NewPassContent(models.CardData{}, "https://x/?a=1&b=2", Identity{})
	p, err := NewBuilder().Assemble(pc)
	require.NoError(t, err)

	raw := readArchive(t, p.Data)["pass.json"]
	assert.True(t, bytes.HasPrefix(raw, []byte("{\n  \"formatVersion\": 1,")))
	assert.Contains(t, string(raw), "https://x/?a=1&b=2")
}

func TestBuilder_WithSigner(t *testing.T) {
	s := &stubSigner{sig: []byte("sig-bytes")}
	b := NewBuilder(WithSigner(s), WithIdentity(Identity{PassTypeIdentifier: "pass.x", TeamIdentifier: "TEAM"}))

	p, err := b.Build(models.CardData{FullName: "Jane"}, "https://x")
	require.NoError(t, err)

	assert.True(t, p.Signed)
	assert.Equal(t, []string{"pass.json", "manifest.json", "signature"}, p.Files)

	files := readArchive(t, p.Data)
	assert.Equal(t, []byte("sig-bytes"), files["signature"])
	assert.Equal(t, files["manifest.json"], s.seen)

	var pc PassContent
	require.NoError(t, json.Unmarshal(files["pass.json"], &pc))
	assert.Equal(t, "pass.x", pc.PassTypeIdentifier)
	assert.Equal(t, "TEAM", pc.TeamIdentifier)
}

func TestBuilder_SignerError(t *testing.T) {
	boom := errors.New("no key")
	b := NewBuilder(WithSigner(&stubSigner{err: boom}))

	p, err := b.Build(models.CardData{}, "https://x")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, p)
}

func TestWithSigner_NilKeepsUnsigned(t *testing.T) {
	b := NewBuilder(WithSigner(nil))
	p, err := b.Build(models.CardData{}, "https://x")
	require.NoError(t, err)
	assert.False(t, p.Signed)
}

func sampleCard() models.CardData {
	return models.CardData{FullName: "Jane Cho", Company: "Acme", AccentColor: "#B87333"}
}
