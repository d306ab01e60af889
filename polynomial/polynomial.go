// Package polynomial implements arithmetic over GF(2)[T], the ring of
// polynomials with coefficients in GF(2), represented as big-endian
// bit-strings (most significant bit = highest-degree coefficient).
//
// Only the three operations the S.S0055 whitening step needs are
// provided: Add (XOR), Mul (shift-and-accumulate) and Mod (classical
// long division). Values never exceed a few hundred bits in this
// module's use, so a plain []byte stands in for a bignum library.
package polynomial

// Poly is a polynomial over GF(2), stored big-endian with no implicit
// leading-zero trimming: callers that need a fixed output width export
// via Bytes(n).
type Poly []byte

// BitLen returns the degree+1 of p, i.e. the position of the highest
// set bit plus one. The zero polynomial has BitLen 0.
func (p Poly) BitLen() int {
	for i, b := range p {
		if b == 0 {
			continue
		}
		bit := 0
		for m := byte(0x80); m > 0; m >>= 1 {
			if b&m != 0 {
				break
			}
			bit++
		}
		return (len(p)-i)*8 - bit
	}
	return 0
}

// bitAt reports whether bit n (0 = least significant) is set in p,
// treating p as big-endian over len(p)*8 bits.
func (p Poly) bitAt(n int) bool {
	byteLen := len(p)
	idx := byteLen - 1 - n/8
	if idx < 0 || idx >= byteLen {
		return false
	}
	return p[idx]&(1<<uint(n%8)) != 0
}

// shiftLeft returns p shifted left by n bits (towards higher degree),
// growing the byte slice as needed.
func shiftLeft(p Poly, n int) Poly {
	if n == 0 {
		return append(Poly(nil), p...)
	}
	bitLen := p.BitLen() + n
	out := make(Poly, (bitLen+7)/8)
	for i := 0; i < len(p)*8; i++ {
		if p.bitAt(i) {
			setBit(out, i+n)
		}
	}
	return out
}

func setBit(p Poly, n int) {
	idx := len(p) - 1 - n/8
	if idx < 0 || idx >= len(p) {
		return
	}
	p[idx] |= 1 << uint(n%8)
}

// Add returns a XOR b, the sum of two polynomials over GF(2). The
// result has the length of the longer operand.
func Add(a, b Poly) Poly {
	la, lb := len(a), len(b)
	n := la
	if lb > n {
		n = lb
	}
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		var av, bv byte
		if ia := i - (n - la); ia >= 0 {
			av = a[ia]
		}
		if ib := i - (n - lb); ib >= 0 {
			bv = b[ib]
		}
		out[i] = av ^ bv
	}
	return out
}

// Mul returns the product of a and b over GF(2)[T]: for each set bit i
// in a, XOR (b shifted left by i) into the accumulator.
func Mul(a, b Poly) Poly {
	resultBits := a.BitLen() + b.BitLen()
	if resultBits <= 0 {
		return Poly{0}
	}
	out := make(Poly, (resultBits+7)/8)
	for i := 0; i < a.BitLen(); i++ {
		if !a.bitAt(i) {
			continue
		}
		shifted := shiftLeft(b, i)
		out = Add(out, shifted)
	}
	return out
}

// Mod reduces a modulo g using classical polynomial long division:
// while deg(a) >= deg(g), align g's top bit to a's top bit by left
// shift and XOR it in. Returns the residue, whose bit length is always
// less than g's.
func Mod(a, g Poly) Poly {
	gBits := g.BitLen()
	if gBits == 0 {
		return append(Poly(nil), a...)
	}
	rem := append(Poly(nil), a...)
	for rem.BitLen() >= gBits {
		shift := rem.BitLen() - gBits
		aligned := shiftLeft(g, shift)
		rem = Add(rem, aligned)
	}
	return rem
}

// Bytes re-exports p as a big-endian byte slice of exactly n bytes,
// left-padded with zeros or truncated from the left if p is longer
// than n bytes (callers are expected to size n so truncation never
// drops set bits).
func Bytes(p Poly, n int) []byte {
	out := make([]byte, n)
	if len(p) >= n {
		copy(out, p[len(p)-n:])
		return out
	}
	copy(out[n-len(p):], p)
	return out
}

// FromBytes wraps a big-endian byte slice as a Poly without copying.
func FromBytes(b []byte) Poly {
	return Poly(b)
}
