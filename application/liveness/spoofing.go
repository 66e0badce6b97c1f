package liveness

import "math"

type SpoofCheck string

const (
	SpoofCheckNone               SpoofCheck = ""
	SpoofCheckUniformMovement    SpoofCheck = "uniform_movement"
	SpoofCheckStaticImage        SpoofCheck = "static_image"
	SpoofCheckConstantBrightness SpoofCheck = "constant_brightness"
)

type SpoofVerdict struct {
	Suspected     bool       `json:"suspected"`
	Check         SpoofCheck `json:"check,omitempty"`
	TotalMovement float64    `json:"total_movement"`
}

// DetectSpoofing inspects the rolling window for replay or photo attacks.
// Fewer than cfg.MinSpoofSamples samples never flag. Checks run in order
// uniform movement, static image, constant brightness and the first hit wins.
func DetectSpoofing(samples []Sample, cfg Config) SpoofVerdict {
	cfg = cfg.withDefaults()
	if len(samples) < cfg.MinSpoofSamples {
		return SpoofVerdict{}
	}

	displacements := make([]float64, 0, len(samples)-1)
	total := 0.0
	for i := 1; i < len(samples); i++ {
		d := distance(samples[i].Box.Center(), samples[i-1].Box.Center())
		displacements = append(displacements, d)
		total += d
	}
	verdict := SpoofVerdict{TotalMovement: total}

	run := 0
	for i := 1; i < len(displacements); i++ {
		if math.Abs(displacements[i]-displacements[i-1]) < cfg.UniformMovementDelta {
			run++
			if run >= cfg.UniformMovementRun {
				verdict.Suspected = true
				verdict.Check = SpoofCheckUniformMovement
				return verdict
			}
			continue
		}
		run = 0
	}

	if total < cfg.MinTotalMovement {
		verdict.Suspected = true
		verdict.Check = SpoofCheckStaticImage
		return verdict
	}

	if constantBrightness(samples, cfg.BrightnessDelta) {
		verdict.Suspected = true
		verdict.Check = SpoofCheckConstantBrightness
	}
	return verdict
}

// constantBrightness reports whether no frame-to-frame brightness change
// exceeds delta. Windows with unknown brightness are not judged.
func constantBrightness(samples []Sample, delta float64) bool {
	for _, s := range samples {
		if !s.HasBrightness {
			return false
		}
	}
	for i := 1; i < len(samples); i++ {
		if math.Abs(samples[i].Brightness-samples[i-1].Brightness) > delta {
			return false
		}
	}
	return true
}
