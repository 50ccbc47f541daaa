package primitives

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestHMACSHA512RFC4231 checks test cases 1, 2, 3, and 6 from RFC 4231.
func TestHMACSHA512RFC4231(t *testing.T) {
	cases := []struct {
		name string
		key  []byte
		data []byte
		want string
	}{
		{
			name: "case1",
			key:  bytes.Repeat([]byte{0x0b}, 20),
			data: []byte("Hi There"),
			want: "87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cdedaa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854",
		},
		{
			name: "case2",
			key:  []byte("Jefe"),
			data: []byte("what do ya want for nothing?"),
			want: "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		},
		{
			name: "case3",
			key:  bytes.Repeat([]byte{0xaa}, 20),
			data: bytes.Repeat([]byte{0xdd}, 50),
			want: "fa73b0089d56a284efb0f0756c890be9b1b5dbdd8ee81a3655f83e33b2279d39bf3e848279a722c806b485a47e67c807b946a337bee8942674278859e13292fb",
		},
		{
			name: "case6_key_longer_than_block",
			key:  bytes.Repeat([]byte{0xaa}, 131),
			data: []byte("Test Using Larger Than Block-Size Key - Hash Key First"),
			want: "80b24263c7c1a3ebb71493c1dd7be8b49b46d1f41b4aeec1121b013783f8f3526b56d037e05f2598bd0fd2215d6a1e5295e64f73f63f0aec8b915a985d786598",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HMACSHA512(c.key, c.data)
			if hex.EncodeToString(got[:]) != c.want {
				t.Errorf("HMACSHA512 = %x, want %s", got, c.want)
			}
		})
	}
}
