package passgen

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// passwordEnv, when set, supplies the certificate password without a prompt.
const passwordEnv = "PASSGEN_CERT_PASSWORD"

// GetPassword prints prompt to w and reads a password from the terminal
// without echo. A newline is printed after the read.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func certificatePassword(w io.Writer) (string, error) {
	if pw, ok := os.LookupEnv(passwordEnv); ok {
		return pw, nil
	}
	pw, err := GetPassword(w, "Certificate password: ")
	if err != nil {
		return "", fmt.Errorf("read certificate password: %w", err)
	}
	return string(pw), nil
}
