// Package passgen implements the offline pass generator behind cmd/passgen.
// It reads card data from a file, stdin or a CardCraft get-card URL and
// writes a .pkpass archive or vCard to disk without touching the database.
package passgen
