package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// idHashLength is the number of hex characters kept from the URL hash
// when no recognized query parameters are present.
const idHashLength = 12

// GenerateID derives a stable, filesystem-safe archive identifier from a
// contract URL and a fetch timestamp. FPDS contract URLs carry agencyID,
// PIID, and modNumber query parameters; the id joins the non-empty ones
// with the timestamp. When none of the three parameters is present
// (including malformed URLs), the id falls back to a truncated content
// hash of the full URL, independent of the timestamp.
func GenerateID(rawURL, timestamp string) string {
	agencyID, piid, modNumber := contractParams(rawURL)

	if agencyID == "" && piid == "" && modNumber == "" {
		sum := sha256.Sum256([]byte(rawURL))
		return hex.EncodeToString(sum[:])[:idHashLength]
	}

	components := make([]string, 0, 4)
	for _, c := range []string{agencyID, piid, modNumber} {
		if c != "" {
			components = append(components, sanitizeComponent(c))
		}
	}
	if timestamp != "" {
		components = append(components, timestamp)
	}
	return strings.Join(components, "_")
}

// sanitizeComponent makes a query parameter safe to use as part of a file
// name. Query values arrive percent-decoded, so a crafted URL can smuggle
// path separators or other reserved characters into an id; anything outside
// a conservative ASCII set is replaced with a dash.
func sanitizeComponent(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}

// contractParams extracts the identifying query parameters from a contract
// URL, returning empty strings for anything absent or unparseable.
func contractParams(rawURL string) (agencyID, piid, modNumber string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", ""
	}

	query := parsed.Query()
	return query.Get("agencyID"), query.Get("PIID"), query.Get("modNumber")
}
