package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenInviteCode generates a classroom invite code: 4 random bytes encoded as
// an 8-character uppercase hexadecimal string. Global uniqueness is enforced
// by the store; callers retry on collision.
func GenInviteCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
