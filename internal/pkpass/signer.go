package pkpass

// ManifestSigner produces the detached signature stored next to
// manifest.json. A nil signature with a nil error means "leave unsigned".
type ManifestSigner interface {
	Sign(manifest []byte) ([]byte, error)
}

// Unsigned is the default signer. Passes built with it open in any ZIP tool
// but will be rejected by Wallet on device.
type Unsigned struct{}

func (Unsigned) Sign([]byte) ([]byte, error) { return nil, nil }
