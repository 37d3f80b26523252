// Package buf provides overflow-safe range checks for byte images whose
// offsets come from untrusted on-disk fields.
package buf

import "math"

// AddOverflowSafe returns a+b and false if the sum overflows int.
func AddOverflowSafe(a, b int) (int, bool) {
	if b > 0 && a > math.MaxInt-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt-b {
		return 0, false
	}
	return a + b, true
}

// Has reports whether b holds n bytes starting at off.
func Has(b []byte, off, n int) bool {
	if off < 0 || n < 0 {
		return false
	}
	end, ok := AddOverflowSafe(off, n)
	return ok && end <= len(b)
}

// Slice returns b[off:off+n] when the range is in bounds.
func Slice(b []byte, off, n int) ([]byte, bool) {
	if !Has(b, off, n) {
		return nil, false
	}
	return b[off : off+n], true
}
