package debug

var basicColors = []int{6, 2, 3, 4, 5, 1}

var extendedColors = []int{
	20, 21, 26, 27, 32, 33, 38, 39, 40, 41, 42, 43, 44, 45, 56, 57, 62, 63, 68,
	69, 74, 75, 76, 77, 78, 79, 80, 81, 92, 93, 98, 99, 112, 113, 128, 129, 134,
	135, 148, 149, 160, 161, 162, 163, 164, 165, 166, 167, 168, 169, 170, 171,
	172, 173, 178, 179, 184, 185, 196, 197, 198, 199, 200, 201, 202, 203, 204,
	205, 206, 207, 208, 209, 214, 215, 220, 221,
}

// hashNamespace is the 32-bit string hash h = h*31 + c, wrapping like a JS
// int32.
func hashNamespace(namespace string) int32 {
	var h int32
	for _, c := range namespace {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// selectColor deterministically picks a palette entry for namespace.
func selectColor(namespace string, palette []int) int {
	h := int64(hashNamespace(namespace))
	if h < 0 {
		h = -h
	}
	return palette[h%int64(len(palette))]
}
