package liveness

// brightnessStride trades accuracy for speed. It is a multiple of 4 so every
// sample lands on the red channel of an RGBA pixel.
const brightnessStride = 20

// SampleBrightness averages R, G and B of every 20th byte of an RGBA buffer.
// The result is on a 0-255 scale. It is not a luminance model.
func SampleBrightness(pixels []byte) float64 {
	var sum float64
	count := 0
	for i := 0; i+2 < len(pixels); i += brightnessStride {
		sum += (float64(pixels[i]) + float64(pixels[i+1]) + float64(pixels[i+2])) / 3
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
