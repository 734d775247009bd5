package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cardcraft/internal/flagx"
)

var serverFlags = []string{
	"-l", "-a", "-d", "-w", "-i", "-m", "-k", "-s", "-n",
	"-o", "-y", "-j", "-t", "-u", "-p", "-b", "-g", "-e", "-v",
}

// parseFlags populates Config fields from short command-line flags.
//
//	-l string   HTTP API bind address (":8080")
//	-a string   gRPC health bind address (":50051")
//	-d string   PostgreSQL DSN
//	-w string   public base URL
//	-i string   pass type identifier
//	-m string   Apple team identifier
//	-k string   pass certificate (.p12) path
//	-s string   pass certificate password
//	-n string   Apple WWDR certificate path
//	-o string   Google Wallet issuer (service account email)
//	-y string   Google Wallet class id
//	-j string   Google service account key path
//	-t int      draft TTL, hours
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-v int      pass link validity, minutes
//
// os.Args is filtered through flagx.FilterArgs first, so -c/-config and
// anything unknown never reach this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP API address")
	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC health address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BaseURL, "w", config.BaseURL, "public base URL")
	fs.StringVar(&config.PassTypeIdentifier, "i", config.PassTypeIdentifier, "pass type identifier")
	fs.StringVar(&config.TeamIdentifier, "m", config.TeamIdentifier, "team identifier")
	fs.StringVar(&config.PassCertificatePath, "k", config.PassCertificatePath, "pass certificate (.p12)")
	fs.StringVar(&config.PassCertificatePassword, "s", config.PassCertificatePassword, "pass certificate password")
	fs.StringVar(&config.WWDRCertificatePath, "n", config.WWDRCertificatePath, "WWDR certificate")
	fs.StringVar(&config.GoogleIssuer, "o", config.GoogleIssuer, "Google Wallet issuer")
	fs.StringVar(&config.GoogleClassID, "y", config.GoogleClassID, "Google Wallet class id")
	fs.StringVar(&config.GoogleKeyPath, "j", config.GoogleKeyPath, "Google service account key")

	draftTTL := fs.Int("t", int(config.DraftTTL.Hours()), "draft TTL (in hours)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	passLinkValidity := fs.Int("v", int(config.PassLinkValidity.Minutes()), "pass link validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DraftTTL = time.Duration(*draftTTL) * time.Hour
	config.PassLinkValidity = time.Duration(*passLinkValidity) * time.Minute
}
