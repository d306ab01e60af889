// Package eapaka derives the EAP-AKA key hierarchy (RFC 4187 §7) from
// a quintuplet's CK and IK. It consumes card.Quintuplet output; it
// does not parse or emit EAP packets. Package fivegaka is the other
// consumer of CK/IK outside the core.
package eapaka

import (
	"crypto/sha1"
	"fmt"
)

// Keys is the key material an EAP-AKA peer/authenticator derives
// after a successful quintuplet exchange.
type Keys struct {
	KEncr []byte // 16 bytes
	KAut  []byte // 16 bytes
	MSK   []byte // 64 bytes
	EMSK  []byte // 64 bytes
}

// prfOutputLen is the total keystream length RFC 4187 §7 derives:
// 16 (K_encr) + 16 (K_aut) + 64 (MSK) + 64 (EMSK).
const prfOutputLen = 16 + 16 + 64 + 64

// DeriveKeys computes MK = SHA1(identity || IK || CK), then expands MK
// into prfOutputLen bytes with prfGenAKA's chained SHA-1 blocks, and
// splits the result into K_encr, K_aut, MSK and EMSK. The expansion is
// not the FIPS 186-2 generator that RFC 4187 §7 names, so the derived
// keys differ from those of an RFC 4187 implementation.
func DeriveKeys(identity string, ck, ik []byte) (Keys, error) {
	if len(ck) != 16 {
		return Keys{}, fmt.Errorf("eapaka: CK must be 16 bytes, got %d", len(ck))
	}
	if len(ik) != 16 {
		return Keys{}, fmt.Errorf("eapaka: IK must be 16 bytes, got %d", len(ik))
	}

	h := sha1.New()
	h.Write([]byte(identity))
	h.Write(ik)
	h.Write(ck)
	mk := h.Sum(nil)

	block := prfGenAKA(mk, prfOutputLen)

	return Keys{
		KEncr: block[0:16],
		KAut:  block[16:32],
		MSK:   block[32:96],
		EMSK:  block[96:160],
	}, nil
}

// prfGenAKA expands key into outputLen bytes: x_0 = SHA1(key), and
// x_j = SHA1(key || x_{j-1}), concatenated and truncated to outputLen.
func prfGenAKA(key []byte, outputLen int) []byte {
	var output []byte
	h := sha1.New()
	h.Write(key)
	current := h.Sum(nil)
	output = append(output, current...)

	for len(output) < outputLen {
		h.Reset()
		h.Write(key)
		h.Write(current)
		current = h.Sum(nil)
		output = append(output, current...)
	}

	return output[:outputLen]
}
