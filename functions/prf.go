package functions

import (
	"crypto/hmac"
	"crypto/sha1"
	"hash"

	"github.com/nithinshyam13/s0055aka/akaerr"
)

// hashLen is the output width of the keyed SHA-1 PRF (step3 in
// S.S0055), 20 bytes.
const hashLen = 20

// PRF is a keyed pseudo-random function that can be rekeyed between
// calls. The S.S0055 functions require keyed SHA-1 specifically; this
// interface exists so functions.New can be handed an alternate
// implementation (e.g. for testing) without touching fx assembly.
type PRF interface {
	// SetKey loads k as the PRF's key. Must be called before GetBytes.
	SetKey(k []byte)
	// GetBytes returns hashLen bytes of PRF output over payload.
	GetBytes(payload []byte) []byte
}

// keyedSHA1 implements PRF using HMAC-SHA1 truncated (never, since
// SHA-1's native output is exactly hashLen bytes) to hashLen bytes.
type keyedSHA1 struct {
	key []byte
}

// NewKeyedSHA1PRF constructs the keyed SHA-1 PRF named in S.S0055 and
// required by the eap_aka_3gpp2 plugin this core is modeled on. It
// never fails today, but returns an error to satisfy the collaborator
// shape in spec.md §6.1 (create_prf can report PrfUnavailable) so a
// future alternate backend can fail construction without changing the
// call signature at every use site.
func NewKeyedSHA1PRF() (PRF, error) {
	return &keyedSHA1{}, nil
}

func (p *keyedSHA1) SetKey(k []byte) {
	p.key = append([]byte(nil), k...)
}

func (p *keyedSHA1) GetBytes(payload []byte) []byte {
	var mac hash.Hash = hmac.New(sha1.New, p.key)
	mac.Write(payload)
	return mac.Sum(nil)[:hashLen]
}

// mustPRF is a helper used by NewDefault when callers skip explicit
// construction; it never actually fails for keyedSHA1 but is routed
// through the same error path other backends would use.
func mustPRF() (PRF, error) {
	prf, err := NewKeyedSHA1PRF()
	if err != nil {
		return nil, akaerr.ErrPrfUnavailable
	}
	return prf, nil
}
