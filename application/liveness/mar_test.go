package liveness

import (
	"math"
	"testing"
)

func TestMouthAspectRatio(t *testing.T) {
	tests := []struct {
		name      string
		landmarks []Point
		want      float64
	}{
		{name: "mouth subset closed", landmarks: mouthLandmarks(0.1), want: 0.1},
		{name: "mouth subset open", landmarks: mouthLandmarks(0.8), want: 0.8},
		{name: "full face set", landmarks: faceLandmarks(0.45), want: 0.45},
		{name: "no landmarks", landmarks: nil, want: 0},
		{name: "unexpected point count", landmarks: make([]Point, 10), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MouthAspectRatio(tt.landmarks)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MouthAspectRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMouthAspectRatioDegenerateHorizontalDistance(t *testing.T) {
	for _, mar := range []float64{0, 0.2, 0.7, 5} {
		points := mouthLandmarks(mar)
		points[16] = points[12]
		if got := MouthAspectRatio(points); got != 0 {
			t.Errorf("MouthAspectRatio() with collapsed corners = %v, want 0", got)
		}

		face := faceLandmarks(mar)
		face[mouthOffset+16] = face[mouthOffset+12]
		if got := MouthAspectRatio(face); got != 0 {
			t.Errorf("MouthAspectRatio() on full set with collapsed corners = %v, want 0", got)
		}
	}
}

func TestSampleBrightness(t *testing.T) {
	t.Run("uniform grey", func(t *testing.T) {
		pixels := make([]byte, 4*100)
		for i := range pixels {
			pixels[i] = 90
		}
		if got := SampleBrightness(pixels); got != 90 {
			t.Errorf("SampleBrightness() = %v, want 90", got)
		}
	})

	t.Run("only every 20th byte is read", func(t *testing.T) {
		pixels := make([]byte, 4*10)
		for i := 0; i < len(pixels); i += 4 {
			if i%20 == 0 {
				pixels[i], pixels[i+1], pixels[i+2] = 30, 60, 90
			} else {
				pixels[i], pixels[i+1], pixels[i+2] = 255, 255, 255
			}
		}
		if got := SampleBrightness(pixels); got != 60 {
			t.Errorf("SampleBrightness() = %v, want 60", got)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		if got := SampleBrightness(nil); got != 0 {
			t.Errorf("SampleBrightness() = %v, want 0", got)
		}
	})
}

func TestHistoryEvictsOldest(t *testing.T) {
	history := NewHistory(3)
	for i := 0; i < 5; i++ {
		history.Push(Sample{Brightness: float64(i)})
	}
	samples := history.Samples()
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	for i, want := range []float64{2, 3, 4} {
		if samples[i].Brightness != want {
			t.Errorf("sample %d brightness = %v, want %v", i, samples[i].Brightness, want)
		}
	}
	history.Reset()
	if history.Len() != 0 {
		t.Errorf("expected empty history after reset, got %d", history.Len())
	}
}
