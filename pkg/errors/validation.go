package errors

// ValidateDomainSizes checks that a task has a usable variable layout.
// Every variable needs at least one value; zero variables is allowed and
// yields an empty index space.
func ValidateDomainSizes(sizes []int) error {
	for v, size := range sizes {
		if size <= 0 {
			return New(ErrCodeInvalidInput, "variable %d has domain size %d (must be positive)", v, size)
		}
	}
	return nil
}

// ValidateState checks that state assigns exactly one in-domain value to
// every variable described by sizes.
func ValidateState(sizes []int, state []int) error {
	if len(state) != len(sizes) {
		return New(ErrCodeInvalidState, "state has %d values, task has %d variables", len(state), len(sizes))
	}
	for v, val := range state {
		if val < 0 || val >= sizes[v] {
			return New(ErrCodeInvalidState, "variable %d has value %d outside domain [0,%d)", v, val, sizes[v])
		}
	}
	return nil
}
