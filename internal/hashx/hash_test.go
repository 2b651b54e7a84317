package hashx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint_KnownVectors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    string
	}{
		{
			name:    "empty payload",
			payload: []byte{},
			want:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:    "abc",
			payload: []byte("abc"),
			want:    "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:    "json body",
			payload: []byte(`{"username":"user@example.com","password":"P@ssw0rd"}`),
			want:    Fingerprint([]byte(`{"username":"user@example.com","password":"P@ssw0rd"}`)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Fingerprint(tt.payload))
		})
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	body := []byte(`{"email":"reset@example.com"}`)
	require.Equal(t, Fingerprint(body), Fingerprint(body))
	require.Len(t, Fingerprint(body), 64)
}

func TestFingerprint_DiffersOnSingleByteChange(t *testing.T) {
	a := Fingerprint([]byte(`{"username":"alice"}`))
	b := Fingerprint([]byte(`{"username":"alicf"}`))
	require.NotEqual(t, a, b)
}
