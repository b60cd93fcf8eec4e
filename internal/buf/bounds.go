// Package buf contains overflow-safe bounds arithmetic for arena access.
// Offsets come off the wire, so every end-offset computation has to survive
// hostile input; on 32-bit platforms int(offset)+size can wrap for a 4 GiB
// arena, which unchecked arithmetic would turn into an out-of-range read.
package buf

import "math"

// End returns off+n, with ok = false when the sum would overflow int.
func End(off, n int) (int, bool) {
	if off < 0 || n < 0 {
		return 0, false
	}
	if off > math.MaxInt-n {
		return 0, false
	}
	return off + n, true
}

// Fits reports whether the range [off, off+n) lies inside a buffer of
// length bufLen, and returns its end offset.
func Fits(bufLen, off, n int) (int, bool) {
	end, ok := End(off, n)
	if !ok || end > bufLen {
		return 0, false
	}
	return end, true
}
