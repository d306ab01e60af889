// Package fivegaka derives the 3GPP TS 33.501 Annex A 5G-AKA key
// hierarchy (KAUSF, KSEAF, KAMF) and the RES*/HXRES* response pair
// from a quintuplet's CK, IK and RES. It is a second, independent
// downstream consumer of the S.S0055 core's output alongside package
// eapaka, demonstrating that the core's output side is agnostic to
// which key hierarchy a caller builds on top of it.
//
// sqnXorAK here is the public SQN-xor-AK field already carried in the
// AUTN a collaborator assembled or received; it is never a value the
// card itself exposes (card never hands out K, AK or XMAC).
package fivegaka

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// DeriveKAUSF computes KAUSF = HMAC-SHA256(CK||IK, 0x6a || SNN || len(SNN) || SQNxorAK || len(SQNxorAK)),
// per TS 33.501 Annex A.2.
func DeriveKAUSF(snn string, sqnXorAK, ck, ik []byte) ([]byte, error) {
	if len(sqnXorAK) != 6 {
		return nil, fmt.Errorf("fivegaka: SQNxorAK must be 6 bytes, got %d", len(sqnXorAK))
	}
	if len(ck) != 16 || len(ik) != 16 {
		return nil, fmt.Errorf("fivegaka: CK and IK must be 16 bytes each")
	}

	input := []byte{0x6a}
	input = append(input, []byte(snn)...)
	input = append(input, len2B(len(snn))...)
	input = append(input, sqnXorAK...)
	input = append(input, len2B(len(sqnXorAK))...)

	key := append(append([]byte{}, ck...), ik...)

	h := hmac.New(sha256.New, key)
	h.Write(input)
	return h.Sum(nil), nil
}

// DeriveKSEAF computes KSEAF = HMAC-SHA256(KAUSF, 0x6c || SNN || len(SNN)),
// per TS 33.501 Annex A.6.
func DeriveKSEAF(snn string, kausf []byte) ([]byte, error) {
	if len(kausf) != 32 {
		return nil, fmt.Errorf("fivegaka: KAUSF must be 32 bytes, got %d", len(kausf))
	}

	input := []byte{0x6c}
	input = append(input, []byte(snn)...)
	input = append(input, len2B(len(snn))...)

	h := hmac.New(sha256.New, kausf)
	h.Write(input)
	return h.Sum(nil), nil
}

// DeriveKAMF computes KAMF = HMAC-SHA256(KAUSF, 0x6d || SUPI || len(SUPI) || ABBA || len(ABBA)),
// per TS 33.501 Annex A.7, with ABBA fixed to 0x0000.
func DeriveKAMF(supi string, kausf []byte) ([]byte, error) {
	if len(kausf) != 32 {
		return nil, fmt.Errorf("fivegaka: KAUSF must be 32 bytes, got %d", len(kausf))
	}

	abba := []byte{0x00, 0x00}
	input := []byte{0x6d}
	input = append(input, []byte(supi)...)
	input = append(input, len2B(len(supi))...)
	input = append(input, abba...)
	input = append(input, len2B(len(abba))...)

	h := hmac.New(sha256.New, kausf)
	h.Write(input)
	return h.Sum(nil), nil
}

// ComputeRESStar derives RES* per TS 33.501 Annex A.4: an
// HMAC-SHA256(CK||IK, ...) over a serving-network name, RAND and RES,
// truncated to its last 16 bytes.
func ComputeRESStar(mcc, mnc string, rand, res, ck, ik []byte) ([]byte, error) {
	if len(mcc) != 3 {
		return nil, fmt.Errorf("fivegaka: invalid MCC %q", mcc)
	}
	if len(mnc) == 2 {
		mnc = "0" + mnc
	} else if len(mnc) != 3 {
		return nil, fmt.Errorf("fivegaka: invalid MNC %q", mnc)
	}
	if len(rand) != 16 {
		return nil, fmt.Errorf("fivegaka: RAND must be 16 bytes, got %d", len(rand))
	}
	if len(ck) != 16 || len(ik) != 16 {
		return nil, fmt.Errorf("fivegaka: CK and IK must be 16 bytes each")
	}

	snn := fmt.Sprintf("5G:mnc%s.mcc%s.3gppnetwork.org", mnc, mcc)
	if len(snn) != 32 {
		return nil, fmt.Errorf("fivegaka: failed to build SNN: %s", snn)
	}

	b := make([]byte, 0, 1+32+2+16+2+len(res)+2)
	b = append(b, 0x6b)
	b = append(b, []byte(snn)...)
	b = append(b, len2B(len(snn))...)
	b = append(b, rand...)
	b = append(b, len2B(len(rand))...)
	b = append(b, res...)
	b = append(b, len2B(len(res))...)

	key := append(append([]byte{}, ck...), ik...)
	h := hmac.New(sha256.New, key)
	h.Write(b)
	out := h.Sum(nil)
	return out[len(out)-16:], nil
}

// ComputeHXRESStar computes HXRES* = SHA256(RAND || RES*)[last 16 bytes],
// per TS 33.501 Annex A.5.
func ComputeHXRESStar(rand, resStar []byte) []byte {
	h := sha256.Sum256(append(append([]byte{}, rand...), resStar...))
	return h[len(h)-16:]
}

func len2B(n int) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(n))
	return b
}
