package utils

// Float32ToInt16 quantizes a [-1, 1] float sample to 16-bit PCM: clamp,
// scale by 32767, round to nearest. No dither is applied.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	v := x * 32767.0
	if v >= 0 {
		v += 0.5
	} else {
		v -= 0.5
	}

	return int16(v)
}
