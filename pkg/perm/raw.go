package perm

// Undefined marks an index a precomputed generator does not map, such as a
// "none of those" value dropped during task compilation.
const Undefined = -1

// IsPermutation reports whether raw contains every value of [0, len(raw))
// exactly once.
func IsPermutation(raw []int) bool {
	seen := make([]bool, len(raw))
	for _, j := range raw {
		if j < 0 || j >= len(raw) || seen[j] {
			return false
		}
		seen[j] = true
	}
	return true
}

// IsIdentityRaw reports whether raw maps every index to itself.
func IsIdentityRaw(raw []int) bool {
	for i, j := range raw {
		if i != j {
			return false
		}
	}
	return true
}

// Complete returns a copy of raw with every Undefined entry mapped to
// itself. It reports false when that does not yield a bijection, which
// happens when some defined entry already maps onto an undefined index.
func Complete(raw []int) ([]int, bool) {
	out := make([]int, len(raw))
	copy(out, raw)
	for i, j := range out {
		if j == Undefined {
			out[i] = i
		}
	}
	return out, IsPermutation(out)
}
