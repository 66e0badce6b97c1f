package liveness

import (
	"errors"
	"math"
	"time"
)

// Point is a single 2D landmark position as reported by the face model.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Box is a face bounding box.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Detection is what the face/landmark model returns for one frame.
type Detection struct {
	Box        Box       `json:"box"`
	Landmarks  []Point   `json:"landmarks"`
	Score      float64   `json:"score"`
	Descriptor []float32 `json:"descriptor,omitempty"`
}

// Frame is one capture from the camera. Pixels holds an RGBA buffer when the
// client sends raw canvas data; otherwise Brightness carries the client side
// sample. Detection is set when detection already ran on the client.
type Frame struct {
	Timestamp  time.Time
	Pixels     []byte
	Brightness *float64
	Detection  *Detection
}

// Sample is a detection held in the rolling window used for spoofing analysis.
type Sample struct {
	Box           Box
	Landmarks     []Point
	Timestamp     time.Time
	Brightness    float64
	HasBrightness bool
}

func newSample(frame *Frame, detection *Detection) Sample {
	sample := Sample{
		Box:       detection.Box,
		Landmarks: detection.Landmarks,
		Timestamp: frame.Timestamp,
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now()
	}
	switch {
	case len(frame.Pixels) > 0:
		sample.Brightness = SampleBrightness(frame.Pixels)
		sample.HasBrightness = true
	case frame.Brightness != nil:
		sample.Brightness = *frame.Brightness
		sample.HasBrightness = true
	}
	return sample
}

type Status string

const (
	StatusPassed      Status = "passed"
	StatusLockedOut   Status = "locked_out"
	StatusCancelled   Status = "cancelled"
	StatusCameraError Status = "camera_error"
)

type Reason string

const (
	ReasonNone     Reason = ""
	ReasonTimeout  Reason = "timeout"
	ReasonSpoofing Reason = "spoofing"
	ReasonCamera   Reason = "camera"
)

// Outcome is the final result of a verification run.
type Outcome struct {
	Status     Status    `json:"status"`
	Reason     Reason    `json:"reason,omitempty"`
	Attempts   int       `json:"attempts"`
	Message    string    `json:"message"`
	Descriptor []float32 `json:"-"`
}

var (
	ErrNoFace             = errors.New("no face detected in frame")
	ErrGestureTimeout     = errors.New("gesture not detected in time")
	ErrSpoofingSuspected  = errors.New("spoofing suspected")
	ErrCameraUnavailable  = errors.New("camera unavailable")
	ErrFeedClosed         = errors.New("frame feed closed")
	ErrControllerFinished = errors.New("verification already finished")
)

const (
	MessageGestureTimeout = "We could not see you open your mouth twice in time. Please try again."
	MessageSpoofing       = "Spoofing suspected. Verification has been stopped."
	MessageLockout        = "Too many failed verification attempts. You have been signed out."
	MessageCamera         = "Camera access is required to continue. Check your camera permissions."
	MessagePassed         = "Liveness confirmed."
	MessageInProgress     = "Open and close your mouth twice."
)

// Config holds every threshold of the liveness check.
type Config struct {
	OpenThreshold        float64
	ClosedThreshold      float64
	CloseConfirmSamples  int
	MaxPolls             int
	SampleInterval       time.Duration
	AttemptTimeout       time.Duration
	MaxAttempts          int
	HistorySize          int
	MinSpoofSamples      int
	UniformMovementDelta float64
	UniformMovementRun   int
	MinTotalMovement     float64
	BrightnessDelta      float64
	MinDetectionScore    float64
	GestureTarget        int

	// ResetHistoryPerAttempt clears the spoofing window between attempts.
	// The window is always cleared when a run starts.
	ResetHistoryPerAttempt bool
	// RevokeUnconfirmedOpen uncounts an open whose close never showed up
	// within CloseConfirmSamples.
	RevokeUnconfirmedOpen bool
	// DisableSpoofing turns the spoofing checks off. The zero value keeps
	// them on.
	DisableSpoofing bool
}

func DefaultConfig() Config {
	return Config{
		OpenThreshold:        0.6,
		ClosedThreshold:      0.3,
		CloseConfirmSamples:  30,
		MaxPolls:             240,
		SampleInterval:       100 * time.Millisecond,
		AttemptTimeout:       30 * time.Second,
		MaxAttempts:          3,
		HistorySize:          15,
		MinSpoofSamples:      8,
		UniformMovementDelta: 0.02,
		UniformMovementRun:   3,
		MinTotalMovement:     0.8,
		BrightnessDelta:      2,
		MinDetectionScore:    0.5,
		GestureTarget:        2,
	}
}

// withDefaults fills zero values so a partially built Config is usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.OpenThreshold <= 0 {
		c.OpenThreshold = d.OpenThreshold
	}
	if c.ClosedThreshold <= 0 {
		c.ClosedThreshold = d.ClosedThreshold
	}
	if c.CloseConfirmSamples <= 0 {
		c.CloseConfirmSamples = d.CloseConfirmSamples
	}
	if c.MaxPolls <= 0 {
		c.MaxPolls = d.MaxPolls
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = d.SampleInterval
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = d.AttemptTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.HistorySize <= 0 {
		c.HistorySize = d.HistorySize
	}
	if c.MinSpoofSamples <= 0 {
		c.MinSpoofSamples = d.MinSpoofSamples
	}
	if c.UniformMovementDelta <= 0 {
		c.UniformMovementDelta = d.UniformMovementDelta
	}
	if c.UniformMovementRun <= 0 {
		c.UniformMovementRun = d.UniformMovementRun
	}
	if c.MinTotalMovement <= 0 {
		c.MinTotalMovement = d.MinTotalMovement
	}
	if c.BrightnessDelta <= 0 {
		c.BrightnessDelta = d.BrightnessDelta
	}
	if c.MinDetectionScore < 0 {
		c.MinDetectionScore = d.MinDetectionScore
	}
	if c.GestureTarget <= 0 {
		c.GestureTarget = d.GestureTarget
	}
	return c
}
