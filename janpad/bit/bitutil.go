package bit

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// Set will return the passed byte with the bit at the specified index set to 1.
func Set(index, value uint8) uint8 {
	return value | (1 << index)
}

// Reset will return the passed byte with the bit at the specified index set to 0.
func Reset(index, value uint8) uint8 {
	return value & ((1 << index) ^ 0xFF)
}

// Assign returns value with the bit at index set to 1 when on is true and
// reset to 0 otherwise.
func Assign(index, value uint8, on bool) uint8 {
	if on {
		return Set(index, value)
	}
	return Reset(index, value)
}

// Mask returns a byte with only the bits at the given indexes set.
func Mask(indexes ...uint8) uint8 {
	var m uint8
	for _, i := range indexes {
		m = Set(i, m)
	}
	return m
}
