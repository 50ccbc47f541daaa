package primitives

import (
	"encoding/hex"
	"testing"

	sha256simd "github.com/minio/sha256-simd"
)

func TestSHA256Vectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte{}, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", []byte("abc"), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SHA256(c.in)
			if hex.EncodeToString(got[:]) != c.want {
				t.Errorf("SHA256(%q) = %x, want %s", c.in, got, c.want)
			}
		})
	}
}

func TestSHA256CrossCheckAgainstSIMDReference(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 127, 128, 200} {
		in := make([]byte, n)
		for i := range in {
			in[i] = byte(i)
		}
		got := SHA256(in)
		want := sha256simd.Sum256(in)
		if got != want {
			t.Errorf("SHA256 mismatch for len=%d: got %x want %x", n, got, want)
		}
	}
}
