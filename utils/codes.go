// utils/codes.go
package utils

import (
	"crypto/rand"
	"strings"
)

// inviteCharset drops 0/O/1/I so codes survive being read aloud. 32 glyphs,
// a power of two, so a random byte masked to 5 bits picks uniformly.
const inviteCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const InviteCodeLength = 8

// GenerateInviteCode returns an 8-character referral code.
func GenerateInviteCode() string {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}

	var sb strings.Builder
	sb.Grow(InviteCodeLength)
	for _, b := range buf {
		sb.WriteByte(inviteCharset[b&31])
	}
	return sb.String()
}

// InviteCharset exposes the alphabet for validation and tests.
func InviteCharset() string { return inviteCharset }
