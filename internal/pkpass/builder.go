package pkpass

import (
	"fmt"

	"github.com/dmitrijs2005/cardcraft/internal/models"
)

const (
	PassFile      = "pass.json"
	ManifestFile  = "manifest.json"
	SignatureFile = "signature"

	ContentType = "application/vnd.apple.pkpass"
)

// Pass is a built .pkpass container.
type Pass struct {
	Data         []byte
	SerialNumber string
	// Signed is false when no signature entry was written.
	Signed bool
	Files  []string
}

// Builder turns card data into .pkpass archives. It holds no mutable state
// and may be shared between goroutines as long as its signer may.
type Builder struct {
	identity Identity
	signer   ManifestSigner
}

// Option configures a Builder.
type Option func(*Builder)

// WithIdentity sets the pass type and team identifiers.
func WithIdentity(id Identity) Option {
	return func(b *Builder) {
		b.identity = id
	}
}

// WithSigner installs a manifest signer. A nil signer keeps passes unsigned.
func WithSigner(s ManifestSigner) Option {
	return func(b *Builder) {
		if s != nil {
			b.signer = s
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{signer: Unsigned{}}
	for _, opt := range opts {
		opt(b)
	}
	b.identity = b.identity.withDefaults()
	return b
}

// Build formats card into pass.json and packages it.
func (b *Builder) Build(card models.CardData, url string) (*Pass, error) {
	return b.Assemble(NewPassContent(card, url, b.identity))
}

// Assemble serialises content, hashes it into manifest.json, asks the signer
// for a signature and zips the result. Either the whole archive is returned
// or an error.
func (b *Builder) Assemble(content PassContent) (*Pass, error) {
	passJSON, err := marshalJSON(content, "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", PassFile, err)
	}

	files := []File{{Name: PassFile, Data: passJSON}}

	manifestJSON, err := BuildManifest(files).JSON()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ManifestFile, err)
	}
	files = append(files, File{Name: ManifestFile, Data: manifestJSON})

	signature, err := b.signer.Sign(manifestJSON)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", ManifestFile, err)
	}
	if signature != nil {
		files = append(files, File{Name: SignatureFile, Data: signature})
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}

	return &Pass{
		Data:         BuildZip(files),
		SerialNumber: content.SerialNumber,
		Signed:       signature != nil,
		Files:        names,
	}, nil
}
