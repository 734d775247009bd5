package pkpass

import (
	"bytes"
	"crypto/sha1" // #nosec G505 -- the pass manifest format mandates SHA-1
	"encoding/hex"
	"encoding/json"
)

// Manifest maps archive file names to the lowercase hex SHA-1 of their bytes.
type Manifest map[string]string

// SHA1Hex returns the lowercase hex SHA-1 digest of data.
func SHA1Hex(data []byte) string {
	sum := sha1.Sum(data) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// BuildManifest hashes every file. The manifest itself is never part of files.
func BuildManifest(files []File) Manifest {
	m := make(Manifest, len(files))
	for _, f := range files {
		m[f.Name] = SHA1Hex(f.Data)
	}
	return m
}

// JSON returns the compact manifest.json content.
func (m Manifest) JSON() ([]byte, error) {
	return marshalJSON(map[string]string(m), "")
}

// marshalJSON encodes v without HTML escaping, optionally indented, and without
// the trailing newline json.Encoder appends.
func marshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
