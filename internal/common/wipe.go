package common

// WipeByteArray overwrites the contents of b with zeros. The CLI uses it on
// passwords read from the terminal once they have been handed to the
// gateway.
//
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
