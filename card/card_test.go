package card

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nithinshyam13/s0055aka/akaerr"
	"github.com/nithinshyam13/s0055aka/functions"
)

type staticKeys struct {
	k map[string][]byte
}

func (s staticKeys) GetK(identity string) ([]byte, bool) {
	k, ok := s.k[identity]
	return k, ok
}

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

const testK = "000102030405060708090a0b0c0d0e0f"
const testRand = "0f0e0d0c0b0a09080706050403020100"
const testSQN = "000000000005"
const testAMF = "0000"
const testAUTN = "0104e7f1ffa40000582b79b2be52c085"
const testRES = "fd4979b26514e639309b25887cb2bb46"
const testCK = "47c42cea2767ab0aec2ef77cd1b1acac"
const testIK = "ad4148c2098257081053b1b06b4426ea"

func newTestCard(t *testing.T, seqCheck bool, initialSQN string) (*Card, []byte) {
	t.Helper()
	fn, err := functions.NewDefault()
	require.NoError(t, err)

	k := decodeHex(t, testK)
	keys := staticKeys{k: map[string][]byte{"alice": k}}

	var sqn [functions.SQNLen]byte
	copy(sqn[:], decodeHex(t, initialSQN))

	return New(fn, keys, seqCheck, sqn, nil), k
}

func TestGetQuintupletAcceptsValidAUTN(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	q, err := c.GetQuintuplet("alice", decodeHex(t, testRand), decodeHex(t, testAUTN))
	require.NoError(t, err)
	require.Equal(t, decodeHex(t, testRES), q.RES)
	require.Equal(t, decodeHex(t, testCK), q.CK)
	require.Equal(t, decodeHex(t, testIK), q.IK)

	require.Equal(t, decodeHex(t, testSQN), c.StoredSQN()[:])
}

func TestGetQuintupletRejectsUnknownIdentity(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	_, err := c.GetQuintuplet("bob", decodeHex(t, testRand), decodeHex(t, testAUTN))
	require.ErrorIs(t, err, akaerr.ErrKeyNotFound)
}

func TestGetQuintupletRejectsTamperedMAC(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	autn := decodeHex(t, testAUTN)
	autn[len(autn)-1] ^= 0x01

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand), autn)
	require.ErrorIs(t, err, akaerr.ErrMacMismatch)
}

func TestGetQuintupletRejectsTamperedAMF(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	autn := decodeHex(t, testAUTN)
	autn[6] ^= 0x80 // AMF byte, MAC left untouched so XMAC no longer matches

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand), autn)
	require.ErrorIs(t, err, akaerr.ErrMacMismatch)
}

func TestGetQuintupletRejectsTamperedRAND(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	rand := decodeHex(t, testRand)
	rand[0] ^= 0x01

	_, err := c.GetQuintuplet("alice", rand, decodeHex(t, testAUTN))
	require.ErrorIs(t, err, akaerr.ErrMacMismatch)
}

func TestGetQuintupletRejectsReplay(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand), decodeHex(t, testAUTN))
	require.NoError(t, err)

	_, err = c.GetQuintuplet("alice", decodeHex(t, testRand), decodeHex(t, testAUTN))
	require.ErrorIs(t, err, akaerr.ErrInvalidSequence)
}

func TestGetQuintupletRejectsEqualSQN(t *testing.T) {
	// storedSQN already equals the AUTN's SQN: "greater than", not
	// "greater than or equal", must be rejected.
	c, _ := newTestCard(t, true, testSQN)

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand), decodeHex(t, testAUTN))
	require.ErrorIs(t, err, akaerr.ErrInvalidSequence)
}

func TestGetQuintupletIgnoresSequenceWhenSeqCheckOff(t *testing.T) {
	c, _ := newTestCard(t, false, testSQN)

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand), decodeHex(t, testAUTN))
	require.NoError(t, err)
}

func TestGetQuintupletRejectsWrongLengthRAND(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand)[:15], decodeHex(t, testAUTN))
	require.Error(t, err)
}

func TestGetQuintupletRejectsWrongLengthAUTN(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	_, err := c.GetQuintuplet("alice", decodeHex(t, testRand), decodeHex(t, testAUTN)[:15])
	require.Error(t, err)
}

func TestResyncDoesNotMutateStoredSQN(t *testing.T) {
	c, _ := newTestCard(t, true, testSQN)

	auts, err := c.Resync("alice", decodeHex(t, testRand))
	require.NoError(t, err)
	require.Len(t, auts, functions.AUTSLen)

	require.Equal(t, decodeHex(t, testSQN), c.StoredSQN()[:])
}

func TestResyncRejectsUnknownIdentity(t *testing.T) {
	c, _ := newTestCard(t, true, "000000000000")

	_, err := c.Resync("bob", decodeHex(t, testRand))
	require.ErrorIs(t, err, akaerr.ErrKeyNotFound)
}

func TestResyncThenGetQuintupletAcceptsRecoveredSQN(t *testing.T) {
	// The network recovers SQN from AUTS, builds a fresh AUTN for a SQN
	// strictly beyond it, and the card must accept it.
	fn, err := functions.NewDefault()
	require.NoError(t, err)

	k := decodeHex(t, testK)
	keys := staticKeys{k: map[string][]byte{"alice": k}}
	var sqn [functions.SQNLen]byte
	copy(sqn[:], decodeHex(t, testSQN))

	c := New(fn, keys, true, sqn, nil)

	rand := decodeHex(t, testRand)
	auts, err := c.Resync("alice", rand)
	require.NoError(t, err)
	require.Len(t, auts, functions.AUTSLen)

	aks, err := fn.F5Star(k, rand)
	require.NoError(t, err)
	recoveredSQN := xor(auts[:functions.SQNLen], aks)
	require.Equal(t, sqn[:], recoveredSQN)

	nextSQN := append([]byte(nil), recoveredSQN...)
	nextSQN[len(nextSQN)-1]++
	amf := decodeHex(t, testAMF)
	ak, err := fn.F5(k, rand)
	require.NoError(t, err)
	mac, err := fn.F1(k, rand, nextSQN, amf)
	require.NoError(t, err)
	autn := append(append(xor(nextSQN, ak), amf...), mac...)

	_, err = c.GetQuintuplet("alice", rand, autn)
	require.NoError(t, err)
	require.Equal(t, nextSQN, c.StoredSQN()[:])
}

func TestBoundarySQNValues(t *testing.T) {
	fn, err := functions.NewDefault()
	require.NoError(t, err)
	k := decodeHex(t, testK)
	rand := decodeHex(t, testRand)
	amf := decodeHex(t, testAMF)

	zero := make([]byte, functions.SQNLen)
	maxSQN := make([]byte, functions.SQNLen)
	for i := range maxSQN {
		maxSQN[i] = 0xff
	}

	macZero, err := fn.F1(k, rand, zero, amf)
	require.NoError(t, err)
	macMax, err := fn.F1(k, rand, maxSQN, amf)
	require.NoError(t, err)
	require.NotEqual(t, macZero, macMax)
}

func TestZeroKeyProducesFixedWidthOutputs(t *testing.T) {
	fn, err := functions.NewDefault()
	require.NoError(t, err)
	zeroK := make([]byte, functions.KLen)
	rand := decodeHex(t, testRand)

	res, err := fn.F2(zeroK, rand)
	require.NoError(t, err)
	require.Len(t, res, functions.RESLen)
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
