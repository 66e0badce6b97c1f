package liveness

const (
	fullLandmarkCount  = 68
	mouthLandmarkCount = 20
	mouthOffset        = 48
)

// MouthAspectRatio computes the inner-mouth aspect ratio
//
//	MAR = (|p63-p67| + |p64-p66| + |p62-p68|) / (2 * |p61-p65|)
//
// where pN is the 1-indexed point of the 68-point scheme. landmarks may be
// either the full 68-point set or the 20-point mouth subset, in which case the
// inner lip points sit at positions 12 to 19. A zero result means the ratio
// could not be computed and the caller should skip the sample.
func MouthAspectRatio(landmarks []Point) float64 {
	var mouth []Point
	switch len(landmarks) {
	case fullLandmarkCount:
		mouth = landmarks[mouthOffset:]
	case mouthLandmarkCount:
		mouth = landmarks
	default:
		return 0
	}

	horizontal := distance(mouth[12], mouth[16])
	if horizontal == 0 {
		return 0
	}
	vertical := distance(mouth[14], mouth[18]) +
		distance(mouth[15], mouth[17]) +
		distance(mouth[13], mouth[19])
	return vertical / (2 * horizontal)
}
