package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/gwallet"
	cm "github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/dmitrijs2005/cardcraft/internal/pkpass"
	sc "github.com/dmitrijs2005/cardcraft/internal/server/config"
	"github.com/dmitrijs2005/cardcraft/internal/vcard"
)

// PassType selects the wallet format produced by PassService.
type PassType string

const (
	PassTypeApple  PassType = "apple"
	PassTypeGoogle PassType = "google"
	PassTypeVCard  PassType = "vcard"
)

// ParsePassType validates a client-supplied pass type.
func ParsePassType(s string) (PassType, error) {
	switch t := PassType(s); t {
	case PassTypeApple, PassTypeGoogle, PassTypeVCard:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrorInvalidPassType, s)
	}
}

// GooglePass is the Google Wallet rendition of a card.
type GooglePass struct {
	Object  gwallet.GenericObject `json:"passObject"`
	SaveURL string                `json:"saveUrl"`
	VCard   string                `json:"vcard"`
	Signed  bool                  `json:"-"`
}

type PassService struct {
	config  *sc.Config
	builder *pkpass.Builder
	issuer  *gwallet.Issuer
	store   *ObjectStore
}

func NewPassService(config *sc.Config, builder *pkpass.Builder, issuer *gwallet.Issuer, store *ObjectStore) *PassService {
	return &PassService{config: config, builder: builder, issuer: issuer, store: store}
}

// NewPassServiceFromConfig loads the optional Apple certificate and Google
// key named in config. Missing paths leave passes or links unsigned.
func NewPassServiceFromConfig(config *sc.Config) (*PassService, error) {
	opts := []pkpass.Option{pkpass.WithIdentity(pkpass.Identity{
		PassTypeIdentifier: config.PassTypeIdentifier,
		TeamIdentifier:     config.TeamIdentifier,
	})}
	if config.PassCertificatePath != "" {
		signer, err := pkpass.LoadPKCS7Signer(config.PassCertificatePath, config.PassCertificatePassword, config.WWDRCertificatePath)
		if err != nil {
			return nil, fmt.Errorf("load pass certificate: %w", err)
		}
		opts = append(opts, pkpass.WithSigner(signer))
	}

	issuer := gwallet.NewIssuer(config.GoogleIssuer, nil)
	if config.GoogleKeyPath != "" {
		var err error
		if issuer, err = gwallet.LoadIssuer(config.GoogleIssuer, config.GoogleKeyPath); err != nil {
			return nil, fmt.Errorf("load google key: %w", err)
		}
	}

	return NewPassService(config, pkpass.NewBuilder(opts...), issuer, NewObjectStore(config)), nil
}

// CardURL returns url, or the configured base URL when url is empty.
func (s *PassService) CardURL(url string) string {
	if url != "" {
		return url
	}
	if s.config.BaseURL != "" {
		return s.config.BaseURL
	}
	return common.DefaultBaseURL
}

// Apple builds a .pkpass for card linking to url.
func (s *PassService) Apple(card cm.CardData, url string) (*pkpass.Pass, error) {
	return s.builder.Build(card, s.CardURL(url))
}

// Google builds the generic wallet object and its save link.
func (s *PassService) Google(card cm.CardData, url string) (*GooglePass, error) {
	obj := gwallet.NewObject(card, s.CardURL(url), s.config.GoogleClassID)
	link, err := s.issuer.SaveLink(obj)
	if err != nil {
		return nil, err
	}
	return &GooglePass{Object: obj, SaveURL: link.URL, VCard: vcard.Generate(card), Signed: link.Signed}, nil
}

// VCard renders card as a vCard 3.0 document.
func (s *PassService) VCard(card cm.CardData) string {
	return vcard.Generate(card)
}

// StorageConfigured reports whether Archive can succeed.
func (s *PassService) StorageConfigured() bool {
	return s.store.Configured()
}

// Archive uploads an Apple pass for cardID and returns a presigned link.
func (s *PassService) Archive(ctx context.Context, cardID string, pass *pkpass.Pass) (*ObjectLink, error) {
	return s.store.Put(ctx, StoreKey(cardID, pass.SerialNumber), pkpass.ContentType, pass.Data)
}
