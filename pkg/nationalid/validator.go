// Package nationalid validates the national identity document (DPI) carried
// on account records.
//
// The check is a closed-set membership test on the document's trailing
// four-digit municipality code, not a check-digit validation. Documents
// whose suffix falls outside the registry are rejected even if they are
// otherwise well formed.
package nationalid

const documentLength = 13

// IsValid reports whether id is a 13-character document whose last four
// characters are a registered department/municipality code.
func IsValid(id string) bool {
	if len(id) != documentLength {
		return false
	}
	suffix := id[len(id)-4:]
	return validMunicipalityCodes[suffix]
}
