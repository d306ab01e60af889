// Package functions implements the seven S.S0055 AKA functions
// (F1, F1Star, F2, F3, F4, F5, F5Star) built from a keyed SHA-1 PRF
// and the GF(2^160) polynomial whitening step in package polynomial.
//
// Functions is stateless pure computation: given K and RAND (and, for
// F1/F1Star, SQN and AMF), it produces MAC/RES/CK/IK/AK outputs of
// fixed width. It holds one dependency, the keyed SHA-1 PRF instance,
// whose key slot is overwritten on every call.
package functions

import "fmt"

// Fixed widths, bytes. Named explicitly rather than derived from
// len()/sizeof on caller-supplied slices: the ported C source this
// core is modeled on took sizeof() of pointer parameters by mistake,
// which only happened to work because the surrounding code always
// passed fixed arrays; we use explicit constants instead.
const (
	KLen       = 16
	RandLen    = 16
	SQNLen     = 6
	AMFLen     = 2
	MACLen     = 8
	AKLen      = 6
	CKLen      = 16
	IKLen      = 16
	RESLen     = 16
	AUTNLen    = 16
	AUTSLen    = 14
	payloadLen = 64
)

// Opcode bytes identifying each fx function within the shared PRF
// payload, per S.S0055.
const (
	opF1     = 0x42
	opF1Star = 0x43
	opF2     = 0x44
	opF3     = 0x45
	opF4     = 0x46
	opF5     = 0x47
	opF5Star = 0x48
)

// fmk is the Family Master Key, a 4-byte constant domain-separating
// the fx functions: "AHAG".
var fmk = []byte{0x41, 0x48, 0x41, 0x47}

// Functions computes the S.S0055 AKA function set against an owned
// keyed SHA-1 PRF instance. It is not safe for concurrent use: every
// call overwrites the PRF's key slot.
type Functions struct {
	prf PRF
}

// New constructs a Functions instance around prf. prf must support
// rekeying on every call.
func New(prf PRF) (*Functions, error) {
	if prf == nil {
		return nil, fmt.Errorf("functions: nil PRF")
	}
	return &Functions{prf: prf}, nil
}

// NewDefault constructs a Functions instance using the keyed SHA-1 PRF
// named in S.S0055.
func NewDefault() (*Functions, error) {
	prf, err := mustPRF()
	if err != nil {
		return nil, err
	}
	return New(prf)
}

func newPayload() []byte {
	p := make([]byte, payloadLen)
	for i := range p {
		p[i] = 0x5c
	}
	return p
}

func xorInto(dst []byte, off int, src []byte) {
	for i, b := range src {
		dst[off+i] ^= b
	}
}

func (f *Functions) step3(k, payload []byte) []byte {
	f.prf.SetKey(k)
	h := f.prf.GetBytes(payload)
	out := make([]byte, len(h))
	copy(out, h)
	return out
}

// f1x computes the shared payload assembly for F1 and F1Star: opcode,
// FMK, RAND, SQN and AMF XORed into a 0x5c-filled 64-byte payload,
// then hashed and whitened. Returns the full 20-byte whitened block;
// both F1 and F1Star take the first 8 bytes, the opcode alone
// separating the two (S.S0055 defines no "back half" MAC).
func (f *Functions) f1x(opcode byte, k, rand, sqn, amf []byte) []byte {
	p := newPayload()
	p[11] ^= opcode
	xorInto(p, 12, fmk)
	xorInto(p, 16, rand)
	xorInto(p, 34, sqn)
	xorInto(p, 42, amf)

	h := f.step3(k, p)
	step4(h)
	return h
}

// F1 is the network authentication function: computes the 8-byte MAC
// from K, RAND, SQN and AMF.
func (f *Functions) F1(k, rand, sqn, amf []byte) ([]byte, error) {
	if err := checkLens(k, rand, sqn, amf); err != nil {
		return nil, err
	}
	h := f.f1x(opF1, k, rand, sqn, amf)
	return h[:MACLen], nil
}

// F1Star is the resynchronization MAC function: computes the 8-byte
// MACS from K, RAND, SQN and AMF (AMF is conventionally all-zero when
// called from Resync).
func (f *Functions) F1Star(k, rand, sqn, amf []byte) ([]byte, error) {
	if err := checkLens(k, rand, sqn, amf); err != nil {
		return nil, err
	}
	h := f.f1x(opF1Star, k, rand, sqn, amf)
	return h[:MACLen], nil
}

// fx computes the two-round payload assembly shared by F2, F3 and F4:
// two iterations i in {0,1}, each XORing opcode/FMK/RAND and the round
// index into a fresh 0x5c-filled payload, producing 8 bytes per round
// for a 16-byte total output.
func (f *Functions) fx(opcode byte, k, rand []byte) ([]byte, error) {
	if len(k) != KLen {
		return nil, fmt.Errorf("functions: K must be %d bytes, got %d", KLen, len(k))
	}
	if len(rand) != RandLen {
		return nil, fmt.Errorf("functions: RAND must be %d bytes, got %d", RandLen, len(rand))
	}

	out := make([]byte, RESLen)
	for i := 0; i < 2; i++ {
		p := newPayload()
		p[11] ^= opcode
		xorInto(p, 12, fmk)
		xorInto(p, 24, rand)
		p[3] ^= byte(i)
		p[19] ^= byte(i)
		p[35] ^= byte(i)
		p[51] ^= byte(i)

		h := f.step3(k, p)
		step4(h)
		copy(out[i*8:i*8+8], h[:8])
	}
	return out, nil
}

// F2 computes the 16-byte response RES from K and RAND.
func (f *Functions) F2(k, rand []byte) ([]byte, error) { return f.fx(opF2, k, rand) }

// F3 computes the 16-byte confidentiality key CK from K and RAND.
func (f *Functions) F3(k, rand []byte) ([]byte, error) { return f.fx(opF3, k, rand) }

// F4 computes the 16-byte integrity key IK from K and RAND.
func (f *Functions) F4(k, rand []byte) ([]byte, error) { return f.fx(opF4, k, rand) }

// f5x computes the shared payload assembly for F5 and F5Star: opcode,
// FMK and RAND XORed in, hashed and whitened, taking the first 6 bytes
// as the anonymity key.
func (f *Functions) f5x(opcode byte, k, rand []byte) ([]byte, error) {
	if len(k) != KLen {
		return nil, fmt.Errorf("functions: K must be %d bytes, got %d", KLen, len(k))
	}
	if len(rand) != RandLen {
		return nil, fmt.Errorf("functions: RAND must be %d bytes, got %d", RandLen, len(rand))
	}

	p := newPayload()
	p[11] ^= opcode
	xorInto(p, 12, fmk)
	xorInto(p, 16, rand)

	h := f.step3(k, p)
	step4(h)
	return h[:AKLen], nil
}

// F5 computes the 6-byte anonymity key AK from K and RAND.
func (f *Functions) F5(k, rand []byte) ([]byte, error) { return f.f5x(opF5, k, rand) }

// F5Star computes the 6-byte resynchronization anonymity key AKS from
// K and RAND.
func (f *Functions) F5Star(k, rand []byte) ([]byte, error) { return f.f5x(opF5Star, k, rand) }

func checkLens(k, rand, sqn, amf []byte) error {
	if len(k) != KLen {
		return fmt.Errorf("functions: K must be %d bytes, got %d", KLen, len(k))
	}
	if len(rand) != RandLen {
		return fmt.Errorf("functions: RAND must be %d bytes, got %d", RandLen, len(rand))
	}
	if len(sqn) != SQNLen {
		return fmt.Errorf("functions: SQN must be %d bytes, got %d", SQNLen, len(sqn))
	}
	if len(amf) != AMFLen {
		return fmt.Errorf("functions: AMF must be %d bytes, got %d", AMFLen, len(amf))
	}
	return nil
}
