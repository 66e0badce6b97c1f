package liveness

import "testing"

func samplesFrom(frames []Frame) []Sample {
	samples := make([]Sample, 0, len(frames))
	for i := range frames {
		samples = append(samples, newSample(&frames[i], frames[i].Detection))
	}
	return samples
}

func withBrightness(frames []Frame, value func(i int) float64) []Frame {
	for i := range frames {
		b := value(i)
		frames[i].Brightness = &b
	}
	return frames
}

func TestDetectSpoofing(t *testing.T) {
	cfg := DefaultConfig()

	natural := func(n int) []Frame {
		frames := make([]Frame, n)
		for i := range frames {
			frames[i] = naturalFrame(i, 0.2)
		}
		return frames
	}
	static := func(n int) []Frame {
		frames := make([]Frame, n)
		for i := range frames {
			frames[i] = staticFrame(i, 0.2)
		}
		return frames
	}

	tests := []struct {
		name      string
		samples   []Sample
		wantFlag  bool
		wantCheck SpoofCheck
	}{
		{
			name:     "too few samples never flag",
			samples:  samplesFrom(static(7)),
			wantFlag: false,
		},
		{
			name:     "natural movement and lighting",
			samples:  samplesFrom(natural(12)),
			wantFlag: false,
		},
		{
			name:      "near identical boxes",
			samples:   samplesFrom(static(8)),
			wantFlag:  true,
			wantCheck: SpoofCheckUniformMovement,
		},
		{
			name: "constant speed playback",
			samples: samplesFrom(func() []Frame {
				frames := natural(10)
				for i := range frames {
					frames[i].Detection.Box.X = 100 + float64(i)*2
					frames[i].Detection.Box.Y = 80
				}
				return frames
			}()),
			wantFlag:  true,
			wantCheck: SpoofCheckUniformMovement,
		},
		{
			name: "irregular but tiny movement",
			samples: samplesFrom(func() []Frame {
				frames := natural(10)
				jitter := []float64{0, 0.05, 0.2, 0.21, 0.3, 0.42, 0.43, 0.5, 0.65, 0.66}
				for i := range frames {
					frames[i].Detection.Box.X = 100 + jitter[i]
					frames[i].Detection.Box.Y = 80
				}
				return frames
			}()),
			wantFlag:  true,
			wantCheck: SpoofCheckStaticImage,
		},
		{
			name: "constant brightness with natural movement",
			samples: samplesFrom(withBrightness(natural(10), func(i int) float64 {
				return 120 + float64(i%2)
			})),
			wantFlag:  true,
			wantCheck: SpoofCheckConstantBrightness,
		},
		{
			name: "unknown brightness is not judged",
			samples: samplesFrom(func() []Frame {
				frames := natural(10)
				for i := range frames {
					frames[i].Brightness = nil
				}
				return frames
			}()),
			wantFlag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := DetectSpoofing(tt.samples, cfg)
			if verdict.Suspected != tt.wantFlag {
				t.Fatalf("Suspected = %v, want %v (check %q, total movement %.3f)", verdict.Suspected, tt.wantFlag, verdict.Check, verdict.TotalMovement)
			}
			if verdict.Check != tt.wantCheck {
				t.Errorf("Check = %q, want %q", verdict.Check, tt.wantCheck)
			}
		})
	}
}
