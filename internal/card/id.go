package card

import "crypto/rand"

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ShortID returns a 6-character display id for cards the backend sent without
// one. Collisions are acceptable; this is a display convenience, not a key.
func ShortID() string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b[:])
}
