package pkpass

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"go.mozilla.org/pkcs7"
	"golang.org/x/crypto/pkcs12"
)

// PKCS7Signer signs manifest.json with a pass type certificate, producing
// the DER-encoded detached PKCS#7 blob Wallet expects in the "signature" file.
type PKCS7Signer struct {
	cert  *x509.Certificate
	key   crypto.PrivateKey
	chain []*x509.Certificate
}

func NewPKCS7Signer(cert *x509.Certificate, key crypto.PrivateKey, chain ...*x509.Certificate) (*PKCS7Signer, error) {
	if cert == nil || key == nil {
		return nil, errors.New("pkcs7 signer: certificate and key are required")
	}
	return &PKCS7Signer{cert: cert, key: key, chain: chain}, nil
}

// LoadPKCS7Signer reads the pass certificate and key from a .p12 bundle and
// the Apple WWDR intermediate from a PEM or DER file. An empty wwdrPath
// leaves the chain empty.
func LoadPKCS7Signer(p12Path, password, wwdrPath string) (*PKCS7Signer, error) {
	// #nosec G304 -- operator-supplied certificate path
	raw, err := os.ReadFile(p12Path)
	if err != nil {
		return nil, fmt.Errorf("read pass certificate: %w", err)
	}
	key, cert, err := pkcs12.Decode(raw, password)
	if err != nil {
		return nil, fmt.Errorf("decode pass certificate: %w", err)
	}

	var chain []*x509.Certificate
	if wwdrPath != "" {
		// #nosec G304 -- operator-supplied certificate path
		b, err := os.ReadFile(wwdrPath)
		if err != nil {
			return nil, fmt.Errorf("read wwdr certificate: %w", err)
		}
		wwdr, err := ParseCertificate(b)
		if err != nil {
			return nil, fmt.Errorf("parse wwdr certificate: %w", err)
		}
		chain = append(chain, wwdr)
	}

	return NewPKCS7Signer(cert, key, chain...)
}

// ParseCertificate accepts a single PEM block or raw DER.
func ParseCertificate(b []byte) (*x509.Certificate, error) {
	if block, _ := pem.Decode(b); block != nil {
		b = block.Bytes
	}
	return x509.ParseCertificate(b)
}

func (s *PKCS7Signer) Sign(manifest []byte) ([]byte, error) {
	sd, err := pkcs7.NewSignedData(manifest)
	if err != nil {
		return nil, err
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)
	if err := sd.AddSignerChain(s.cert, s.key, s.chain, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, err
	}
	sd.Detach()
	return sd.Finish()
}
