package format

// AlignUp returns n rounded up to the next multiple of align. align must be a
// power of two; an align of 0 or 1 returns n unchanged.
//
// Example:
//
//	AlignUp(1, 4096)    = 4096
//	AlignUp(4096, 4096) = 4096
//	AlignUp(4097, 4096) = 8192
func AlignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	mask := align - 1
	return (n + mask) & ^mask
}
