// Package solana handles the lexical side of Solana mint addresses:
// spotting them in free-form chat text and basic base58 diagnostics.
package solana

import (
	"regexp"

	"github.com/mr-tron/base58"
)

const (
	minAddressLen = 32
	maxAddressLen = 44

	// PubkeyBytes is the byte width of an ed25519 public key.
	PubkeyBytes = 32
)

// Base58 alphabet excludes 0, I, O and l.
var base58Run = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]+`)

// ExtractAddress scans text for the first maximal base58 run whose length is
// between 32 and 44 characters and returns it verbatim. The bound is a hard
// stop: a longer run (a transaction signature, for example) never matches,
// not even as a prefix. Matching is purely lexical; no on-chain validation.
func ExtractAddress(text string) (string, bool) {
	for _, run := range base58Run.FindAllString(text, -1) {
		if len(run) >= minAddressLen && len(run) <= maxAddressLen {
			return run, true
		}
	}
	return "", false
}

// DecodedLen reports how many bytes the address decodes to. Mint addresses
// decode to PubkeyBytes; other widths are legal base58 and are only worth a
// log line, never a rejection.
func DecodedLen(address string) (int, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}
