package liveness

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// mouthLandmarks builds the 20-point mouth subset with the requested MAR.
// The inner corners sit 2 units apart so MAR = 3h/4 for lip gap h.
func mouthLandmarks(mar float64) []Point {
	h := 4 * mar / 3
	points := make([]Point, mouthLandmarkCount)
	for i := 0; i < 12; i++ {
		points[i] = Point{X: float64(i) * 0.25, Y: 5}
	}
	points[12] = Point{X: 0, Y: 0}
	points[13] = Point{X: 0.5, Y: -h / 2}
	points[14] = Point{X: 1, Y: -h / 2}
	points[15] = Point{X: 1.5, Y: -h / 2}
	points[16] = Point{X: 2, Y: 0}
	points[17] = Point{X: 1.5, Y: h / 2}
	points[18] = Point{X: 1, Y: h / 2}
	points[19] = Point{X: 0.5, Y: h / 2}
	return points
}

func faceLandmarks(mar float64) []Point {
	points := make([]Point, fullLandmarkCount)
	for i := 0; i < mouthOffset; i++ {
		points[i] = Point{X: float64(i), Y: float64(i)}
	}
	copy(points[mouthOffset:], mouthLandmarks(mar))
	return points
}

// naturalFrame returns a frame whose box and brightness move irregularly so
// none of the spoofing checks fire.
func naturalFrame(i int, mar float64) Frame {
	offsets := []float64{0, 1.5, 4, 4.5, 8, 9.2, 13, 13.1, 17.5, 19, 24, 24.4, 29, 31.5, 36}
	brightness := 100 + float64((i*7)%13)
	return Frame{
		Timestamp:  time.Unix(0, 0).Add(time.Duration(i) * 100 * time.Millisecond),
		Brightness: &brightness,
		Detection: &Detection{
			Box:        Box{X: 100 + offsets[i%len(offsets)], Y: 80 + float64(i%4), Width: 120, Height: 120},
			Landmarks:  faceLandmarks(mar),
			Score:      0.95,
			Descriptor: []float32{0.1, 0.2, float32(i)},
		},
	}
}

func staticFrame(i int, mar float64) Frame {
	frame := naturalFrame(i, mar)
	frame.Detection.Box = Box{X: 100, Y: 80, Width: 120, Height: 120}
	return frame
}

type scriptedCamera struct {
	mu     sync.Mutex
	frames []Frame
	next   int
	err    error
	closed atomic.Int32
}

func (c *scriptedCamera) Capture(ctx context.Context) (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.next >= len(c.frames) {
		return nil, nil
	}
	frame := c.frames[c.next]
	c.next++
	return &frame, nil
}

func (c *scriptedCamera) Close() error {
	c.closed.Add(1)
	return nil
}

type countingTerminator struct {
	calls  atomic.Int32
	reason atomic.Value
}

func (t *countingTerminator) Terminate(_ context.Context, reason Reason) error {
	t.calls.Add(1)
	t.reason.Store(reason)
	return nil
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleInterval = time.Millisecond
	cfg.AttemptTimeout = 2 * time.Second
	cfg.MaxPolls = 40
	return cfg
}
