package functions

import "github.com/nithinshyam13/s0055aka/polynomial"

// Reduction polynomial g = T^160 + T^5 + T^3 + T^2 + 1, 21 bytes
// big-endian: one leading 0x01 byte, nineteen zero bytes, then 0x2d
// (0b00101101 = bits 5,3,2,0 set... the trailing byte encodes T^5+T^3+T^2+1).
var gPoly = polynomial.FromBytes([]byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x2d,
})

// a and b are the "RAND Corporation book" constants from S.S0055, 20
// bytes each, big-endian.
var (
	aPoly = polynomial.FromBytes([]byte{
		0x9d, 0xe9, 0xc9, 0xc8, 0xef, 0xd5, 0x78, 0x11,
		0x48, 0x23, 0x14, 0x01, 0x90, 0x1f, 0x2d, 0x49,
		0x3f, 0x4c, 0x63, 0x65,
	})
	bPoly = polynomial.FromBytes([]byte{
		0x75, 0xef, 0xd1, 0x5c, 0x4b, 0x8f, 0x8f, 0x51,
		0x4e, 0xf3, 0xbc, 0xc3, 0x79, 0x4a, 0x76, 0x5e,
		0x7e, 0xec, 0x45, 0xe0,
	})
)

// step4 applies the whitening transform x <- ((a*x) + b) mod g to a
// 20-byte block, in place, re-exporting the 20-byte big-endian result.
func step4(x []byte) {
	xp := polynomial.FromBytes(x)
	prod := polynomial.Mul(aPoly, xp)
	sum := polynomial.Add(prod, bPoly)
	res := polynomial.Mod(sum, gPoly)
	copy(x, polynomial.Bytes(res, hashLen))
}
