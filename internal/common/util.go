package common

// WipeByteArray zeroes the buffer in place. Used to scrub password bytes
// once they have been sent to the server. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// IsLocalID reports whether the id was synthesized by the offline path.
func IsLocalID(id string) bool {
	return len(id) >= len(LocalIDPrefix) && id[:len(LocalIDPrefix)] == LocalIDPrefix
}
