// Package shared provides small helpers used across client components,
// currently secure wiping of sensitive byte slices.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to clear passwords from memory once they have been handed
// off. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
