// Package card implements the minimal USIM-side state machine: it
// holds the highest-seen sequence number for a subscriber and a
// seq_check policy flag, and delegates all cryptography to package
// functions. See spec.md §4.4-4.6 for the algorithm this implements.
package card

import (
	"crypto/subtle"
	"fmt"

	"go.uber.org/zap"

	"github.com/nithinshyam13/s0055aka/akaerr"
	"github.com/nithinshyam13/s0055aka/functions"
)

// Quintuplet is the transient result of a successful GetQuintuplet
// call: RAND and AUTN in, CK/IK/RES out.
type Quintuplet struct {
	RAND []byte
	CK   []byte
	IK   []byte
	RES  []byte
}

// KeyLookup resolves a subscriber identity to its 128-bit pre-shared
// key. It is the "get_k" collaborator named in spec.md §6.1.
type KeyLookup interface {
	GetK(identity string) (k []byte, ok bool)
}

// Card holds per-subscriber USIM state: the highest-seen SQN and the
// seq_check policy. It delegates all cryptography to a non-owning
// *functions.Functions reference; the caller must keep that instance
// alive for at least as long as the Card.
//
// Card is not safe for concurrent use: both GetQuintuplet and Resync
// read or mutate storedSQN.
type Card struct {
	f         *functions.Functions
	keys      KeyLookup
	seqCheck  bool
	storedSQN [functions.SQNLen]byte
	log       *zap.SugaredLogger
}

// New constructs a Card bound to f (non-owning) and keys, seeded with
// initialSQN, applying seqCheck as described in spec.md §6.2. log may
// be nil, in which case a no-op logger is used.
func New(f *functions.Functions, keys KeyLookup, seqCheck bool, initialSQN [functions.SQNLen]byte, log *zap.SugaredLogger) *Card {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Card{f: f, keys: keys, seqCheck: seqCheck, storedSQN: initialSQN, log: log}
}

// StoredSQN returns the currently stored sequence number.
func (c *Card) StoredSQN() [functions.SQNLen]byte {
	return c.storedSQN
}

// GetQuintuplet verifies AUTN for identity and RAND, advancing the
// stored SQN on success, per spec.md §4.4.
func (c *Card) GetQuintuplet(identity string, rand, autn []byte) (Quintuplet, error) {
	if len(rand) != functions.RandLen {
		return Quintuplet{}, fmt.Errorf("card: RAND must be %d bytes, got %d", functions.RandLen, len(rand))
	}
	if len(autn) != functions.AUTNLen {
		return Quintuplet{}, fmt.Errorf("card: AUTN must be %d bytes, got %d", functions.AUTNLen, len(autn))
	}

	k, ok := c.keys.GetK(identity)
	if !ok {
		c.log.Warnw("no key provisioned for identity", "identity", identity)
		return Quintuplet{}, fmt.Errorf("%w: %s", akaerr.ErrKeyNotFound, identity)
	}

	// AUTN = SQN xor AK | AMF | MAC
	sqnXorAK := autn[0:functions.SQNLen]
	amf := autn[functions.SQNLen : functions.SQNLen+functions.AMFLen]
	mac := autn[functions.SQNLen+functions.AMFLen:]

	ak, err := c.f.F5(k, rand)
	if err != nil {
		return Quintuplet{}, fmt.Errorf("card: F5: %w", err)
	}

	sqn := xor(sqnXorAK, ak)
	c.log.Debugw("recovered sqn", "identity", identity, "sqn", fmt.Sprintf("%x", sqn))

	xmac, err := c.f.F1(k, rand, sqn, amf)
	if err != nil {
		return Quintuplet{}, fmt.Errorf("card: F1: %w", err)
	}

	if subtle.ConstantTimeCompare(mac, xmac) != 1 {
		c.log.Warnw("mac mismatch", "identity", identity)
		return Quintuplet{}, fmt.Errorf("%w", akaerr.ErrMacMismatch)
	}

	if c.seqCheck && compareSQN(sqn, c.storedSQN[:]) <= 0 {
		c.log.Warnw("sqn not strictly increasing", "identity", identity)
		return Quintuplet{}, fmt.Errorf("%w", akaerr.ErrInvalidSequence)
	}

	copy(c.storedSQN[:], sqn)

	res, err := c.f.F2(k, rand)
	if err != nil {
		return Quintuplet{}, fmt.Errorf("card: F2: %w", err)
	}
	ck, err := c.f.F3(k, rand)
	if err != nil {
		return Quintuplet{}, fmt.Errorf("card: F3: %w", err)
	}
	ik, err := c.f.F4(k, rand)
	if err != nil {
		return Quintuplet{}, fmt.Errorf("card: F4: %w", err)
	}

	c.log.Debugw("quintuplet computed", "identity", identity)
	return Quintuplet{RAND: rand, CK: ck, IK: ik, RES: res}, nil
}

// Resync produces an AUTS for identity and RAND using the currently
// stored SQN, without mutating it, per spec.md §4.5.
func (c *Card) Resync(identity string, rand []byte) ([]byte, error) {
	if len(rand) != functions.RandLen {
		return nil, fmt.Errorf("card: RAND must be %d bytes, got %d", functions.RandLen, len(rand))
	}

	k, ok := c.keys.GetK(identity)
	if !ok {
		c.log.Warnw("no key provisioned for identity", "identity", identity)
		return nil, fmt.Errorf("%w: %s", akaerr.ErrKeyNotFound, identity)
	}

	amf := make([]byte, functions.AMFLen)

	aks, err := c.f.F5Star(k, rand)
	if err != nil {
		return nil, fmt.Errorf("card: F5Star: %w", err)
	}
	macs, err := c.f.F1Star(k, rand, c.storedSQN[:], amf)
	if err != nil {
		return nil, fmt.Errorf("card: F1Star: %w", err)
	}

	auts := make([]byte, functions.AUTSLen)
	copy(auts[:functions.SQNLen], xor(c.storedSQN[:], aks))
	copy(auts[functions.SQNLen:], macs)

	c.log.Debugw("resync computed", "identity", identity)
	return auts, nil
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// compareSQN compares two big-endian 48-bit sequence numbers,
// returning <0, 0, >0 as a.Cmp(b) would. Used with the "reject
// equal-or-lesser" semantics in spec.md §4.4 step 6.
func compareSQN(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
