package gwallet

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SaveURLPrefix = "https://pay.google.com/gp/v/save/"
	DefaultIssuer = "cardcraft@cardcraft.iam.gserviceaccount.com"
)

// SaveLink is the "Add to Google Wallet" link for one object.
type SaveLink struct {
	URL   string
	Token string
	// Signed is false when the token is a bare base64 payload that Google
	// will refuse; a service account key is required for a working link.
	Signed bool
}

// Issuer mints save links. Without a key it produces unsigned placeholders.
type Issuer struct {
	email string
	key   *rsa.PrivateKey
}

func NewIssuer(email string, key *rsa.PrivateKey) *Issuer {
	return &Issuer{email: orDefault(email, DefaultIssuer), key: key}
}

type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadIssuer reads either a Google service account JSON key file or a bare
// PEM RSA private key. The client_email of a JSON key wins over email.
func LoadIssuer(email, keyPath string) (*Issuer, error) {
	// #nosec G304 -- operator-supplied key path
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}

	pemBytes := raw
	var sa serviceAccountKey
	if json.Unmarshal(raw, &sa) == nil && sa.PrivateKey != "" {
		pemBytes = []byte(sa.PrivateKey)
		if sa.ClientEmail != "" {
			email = sa.ClientEmail
		}
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	return NewIssuer(email, key), nil
}

func (i *Issuer) claims(objects ...GenericObject) jwt.MapClaims {
	return jwt.MapClaims{
		"iss": i.email,
		"aud": "google",
		"typ": "savetowallet",
		"iat": now().Unix(),
		"payload": map[string]any{
			"genericObjects": objects,
		},
	}
}

// SaveLink wraps obj into a savetowallet JWT. With a key it is RS256-signed;
// otherwise the claims are only base64 encoded.
func (i *Issuer) SaveLink(obj GenericObject) (*SaveLink, error) {
	if i == nil {
		return nil, errors.New("gwallet: nil issuer")
	}
	claims := i.claims(obj)

	if i.key == nil {
		b, err := json.Marshal(claims)
		if err != nil {
			return nil, fmt.Errorf("encode wallet claims: %w", err)
		}
		token := base64.StdEncoding.EncodeToString(b)
		return &SaveLink{URL: SaveURLPrefix + token, Token: token}, nil
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return nil, fmt.Errorf("sign wallet jwt: %w", err)
	}
	return &SaveLink{URL: SaveURLPrefix + token, Token: token, Signed: true}, nil
}
