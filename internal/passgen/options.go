package passgen

import (
	"errors"
	"flag"
	"io"
)

const (
	FormatPKPass = "pkpass"
	FormatVCard  = "vcard"
)

type Options struct {
	In                 string
	URL                string
	Out                string
	Format             string
	CertPath           string
	WWDRPath           string
	PassTypeIdentifier string
	TeamIdentifier     string
	Version            bool
}

// ParseArgs parses command line arguments. Usage goes to stderr.
func ParseArgs(args []string, stderr io.Writer) (*Options, error) {
	o := &Options{}

	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.In, "in", "", "card JSON file, '-' for stdin, or a get-card URL")
	fs.StringVar(&o.URL, "url", "", "share URL encoded in the QR code")
	fs.StringVar(&o.Out, "out", "", "output file (default <Full_Name>.pkpass or .vcf)")
	fs.StringVar(&o.Format, "format", FormatPKPass, "output format: pkpass or vcard")
	fs.StringVar(&o.CertPath, "cert", "", "pass type certificate (.p12)")
	fs.StringVar(&o.WWDRPath, "wwdr", "", "Apple WWDR intermediate certificate (PEM or DER)")
	fs.StringVar(&o.PassTypeIdentifier, "pass-type", "", "pass type identifier")
	fs.StringVar(&o.TeamIdentifier, "team", "", "team identifier")
	fs.BoolVar(&o.Version, "version", false, "print build information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.Version {
		return o, nil
	}

	if o.In == "" {
		fs.Usage()
		return nil, errors.New("-in is required")
	}
	if o.Format != FormatPKPass && o.Format != FormatVCard {
		return nil, errors.New("-format must be pkpass or vcard")
	}
	if o.WWDRPath != "" && o.CertPath == "" {
		return nil, errors.New("-wwdr requires -cert")
	}
	return o, nil
}
