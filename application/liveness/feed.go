package liveness

import (
	"context"
	"fmt"
	"sync"
)

// FrameFeed is a Camera fed by frames pushed from the client. Each pushed
// frame is handed out once; a stale frame is never replayed, since a
// repeated frame would look like a frozen image to the spoofing checks.
type FrameFeed struct {
	mu     sync.Mutex
	latest *Frame
	closed bool
	failed error
	pushed int
}

func NewFrameFeed() *FrameFeed {
	return &FrameFeed{}
}

func (f *FrameFeed) Push(frame Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFeedClosed
	}
	if f.failed != nil {
		return f.failed
	}
	f.latest = &frame
	f.pushed++
	return nil
}

func (f *FrameFeed) Capture(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrFeedClosed
	}
	if f.failed != nil {
		return nil, f.failed
	}
	frame := f.latest
	f.latest = nil
	return frame, nil
}

// Fail marks the client camera as unusable. The next Capture returns
// ErrCameraUnavailable carrying reason, and later pushes are refused.
func (f *FrameFeed) Fail(reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFeedClosed
	}
	if f.failed == nil {
		f.failed = fmt.Errorf("%w: %s", ErrCameraUnavailable, reason)
		f.latest = nil
	}
	return nil
}

func (f *FrameFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.latest = nil
	return nil
}

func (f *FrameFeed) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Pushed is the number of frames accepted so far.
func (f *FrameFeed) Pushed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushed
}

// AttachedDetector returns the detection the client computed for the frame.
type AttachedDetector struct{}

func (AttachedDetector) Detect(_ context.Context, frame *Frame) (*Detection, error) {
	if frame == nil || frame.Detection == nil {
		return nil, ErrNoFace
	}
	return frame.Detection, nil
}
