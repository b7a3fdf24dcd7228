package utils

import "math/bits"

// NextPowerOfTwo returns the smallest power of two that is >= n. n <= 1
// returns 1, matching Rust's usize::next_power_of_two (0.next_power_of_two()
// == 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// IsPowerOfTwo reports whether n is a power of two (n must be positive).
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
