package fivegaka

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKAUSFVector(t *testing.T) {
	sqnXorAK, _ := hex.DecodeString("0104e7f1ffa4")
	ck, _ := hex.DecodeString("47c42cea2767ab0aec2ef77cd1b1acac")
	ik, _ := hex.DecodeString("ad4148c2098257081053b1b06b4426ea")

	kausf, err := DeriveKAUSF("test.network.name", sqnXorAK, ck, ik)
	require.NoError(t, err)

	want, _ := hex.DecodeString("8386fbf07cc56b546e0014cd9ce5df11d29d49f4051baf741b45d98678981d22")
	require.Equal(t, want, kausf)
}

func TestDeriveKSEAFVector(t *testing.T) {
	kausf, _ := hex.DecodeString("8386fbf07cc56b546e0014cd9ce5df11d29d49f4051baf741b45d98678981d22")

	kseaf, err := DeriveKSEAF("test.network.name", kausf)
	require.NoError(t, err)

	want, _ := hex.DecodeString("632497345d4f204c70fd59db14037512c840a3cc6b001b6efe3e1151f189dcd7")
	require.Equal(t, want, kseaf)
}

func TestDeriveKAMFVector(t *testing.T) {
	kausf, _ := hex.DecodeString("8386fbf07cc56b546e0014cd9ce5df11d29d49f4051baf741b45d98678981d22")

	kamf, err := DeriveKAMF("imsi-001010000000001", kausf)
	require.NoError(t, err)

	want, _ := hex.DecodeString("6e283ba6a16c2ebb0ac02a06fc676c825720fc3e261f51d5018352db53615924")
	require.Equal(t, want, kamf)
}

func TestComputeRESStarVector(t *testing.T) {
	rand, _ := hex.DecodeString("0f0e0d0c0b0a09080706050403020100")
	res, _ := hex.DecodeString("fd4979b26514e639309b25887cb2bb46")
	ck, _ := hex.DecodeString("47c42cea2767ab0aec2ef77cd1b1acac")
	ik, _ := hex.DecodeString("ad4148c2098257081053b1b06b4426ea")

	resStar, err := ComputeRESStar("001", "01", rand, res, ck, ik)
	require.NoError(t, err)

	want, _ := hex.DecodeString("37764f44070c98a1f759ee52ca84b70c")
	require.Equal(t, want, resStar)
	require.Len(t, resStar, 16)
}

func TestComputeHXRESStarVector(t *testing.T) {
	rand, _ := hex.DecodeString("0f0e0d0c0b0a09080706050403020100")
	resStar, _ := hex.DecodeString("37764f44070c98a1f759ee52ca84b70c")

	hxresStar := ComputeHXRESStar(rand, resStar)

	want, _ := hex.DecodeString("9cceb208d8c3adabe5389be5f41014eb")
	require.Equal(t, want, hxresStar)
}

func TestComputeRESStarRejectsBadMCC(t *testing.T) {
	rand := make([]byte, 16)
	res := make([]byte, 16)
	ck := make([]byte, 16)
	ik := make([]byte, 16)

	_, err := ComputeRESStar("1", "01", rand, res, ck, ik)
	require.Error(t, err)
}

func TestComputeRESStarPads2DigitMNC(t *testing.T) {
	rand := make([]byte, 16)
	res := make([]byte, 16)
	ck := make([]byte, 16)
	ik := make([]byte, 16)

	r1, err := ComputeRESStar("001", "01", rand, res, ck, ik)
	require.NoError(t, err)
	r2, err := ComputeRESStar("001", "001", rand, res, ck, ik)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}
