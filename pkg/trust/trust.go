// Package trust inspects armored GPG keys before they are handed to the
// package manager's trust store.
package trust

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// KeyInfo describes the primary key of an armored keyring.
type KeyInfo struct {
	Fingerprint string
	Identity    string
}

// InspectArmored parses an ASCII-armored keyring and returns information
// about its primary key. Content that does not parse as an armored keyring
// is an upstream-content error: importing it blindly would poison the
// system trust store.
func InspectArmored(data []byte) (*KeyInfo, error) {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse armored key: %w", err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("armored key contains no keys")
	}

	entity := entities[0]

	info := &KeyInfo{
		Fingerprint: strings.ToUpper(hex.EncodeToString(entity.PrimaryKey.Fingerprint)),
	}

	for name := range entity.Identities {
		info.Identity = name
		break
	}

	return info, nil
}
