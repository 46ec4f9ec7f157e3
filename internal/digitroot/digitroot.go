// Package digitroot reduces integers to their base-10 digital root.
package digitroot

// magnitude returns |n| as a uint64 so that math.MinInt does not overflow.
func magnitude(n int) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// Of returns the digital root of n: 0 for 0, otherwise a value in [1,9].
// The sign of n is ignored.
func Of(n int) int {
	m := magnitude(n)
	if m == 0 {
		return 0
	}
	return int(1 + (m-1)%9)
}

// Signed returns Of(n) carrying the sign of n.
func Signed(n int) int {
	if n < 0 {
		return -Of(n)
	}
	return Of(n)
}

// Sum returns a single pass of decimal digit summation over |n|.
// Repeating Sum until the result is below 10 yields Of(n).
func Sum(n int) int {
	m := magnitude(n)
	total := 0
	for m > 0 {
		total += int(m % 10)
		m /= 10
	}
	return total
}
