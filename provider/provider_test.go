package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreGetK(t *testing.T) {
	sub := Subscriber{Identity: "alice"}
	copy(sub.K[:], []byte("0123456789abcdef"))

	s := NewStore([]Subscriber{sub})

	k, ok := s.GetK("alice")
	require.True(t, ok)
	require.Equal(t, []byte("0123456789abcdef"), k)

	_, ok = s.GetK("bob")
	require.False(t, ok)
}

func TestStoreGetKReturnsCopy(t *testing.T) {
	sub := Subscriber{Identity: "alice"}
	copy(sub.K[:], []byte("0123456789abcdef"))
	s := NewStore([]Subscriber{sub})

	k, _ := s.GetK("alice")
	k[0] = 'X'

	k2, _ := s.GetK("alice")
	require.Equal(t, byte('0'), k2[0])
}

func TestStorePut(t *testing.T) {
	s := NewStore(nil)

	sub := Subscriber{Identity: "carol"}
	copy(sub.K[:], []byte("fedcba9876543210"))
	s.Put(sub)

	k, ok := s.GetK("carol")
	require.True(t, ok)
	require.Equal(t, []byte("fedcba9876543210"), k)
}

func TestStoreGetSQNUnknownIdentityIsZero(t *testing.T) {
	s := NewStore(nil)
	require.Equal(t, [6]byte{}, s.GetSQN("nobody"))
}
