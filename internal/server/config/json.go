package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cardcraft/internal/flagx"
	"github.com/dmitrijs2005/cardcraft/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so they may be written as "720h" or as nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             string         `json:"database_dsn"`
	BaseURL                 string         `json:"base_url"`
	PassTypeIdentifier      string         `json:"pass_type_identifier"`
	TeamIdentifier          string         `json:"team_identifier"`
	PassCertificatePath     string         `json:"pass_certificate_path"`
	PassCertificatePassword string         `json:"pass_certificate_password"`
	WWDRCertificatePath     string         `json:"wwdr_certificate_path"`
	GoogleIssuer            string         `json:"google_issuer"`
	GoogleClassID           string         `json:"google_class_id"`
	GoogleKeyPath           string         `json:"google_key_path"`
	DraftTTL                timex.Duration `json:"draft_ttl"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	PassLinkValidity        timex.Duration `json:"pass_link_validity"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Keys absent from the file keep their current value. An unreadable file
// or invalid JSON panics: the server cannot start half-configured.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.BaseURL, c.BaseURL)
	overlay(&config.PassTypeIdentifier, c.PassTypeIdentifier)
	overlay(&config.TeamIdentifier, c.TeamIdentifier)
	overlay(&config.PassCertificatePath, c.PassCertificatePath)
	overlay(&config.PassCertificatePassword, c.PassCertificatePassword)
	overlay(&config.WWDRCertificatePath, c.WWDRCertificatePath)
	overlay(&config.GoogleIssuer, c.GoogleIssuer)
	overlay(&config.GoogleClassID, c.GoogleClassID)
	overlay(&config.GoogleKeyPath, c.GoogleKeyPath)
	overlay(&config.DraftTTL, c.DraftTTL.Duration)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.PassLinkValidity, c.PassLinkValidity.Duration)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
