package liveness

import (
	"context"
	"errors"
	"testing"
	"time"
)

func framesFor(mars ...float64) []Frame {
	frames := make([]Frame, len(mars))
	for i, mar := range mars {
		frames[i] = naturalFrame(i, mar)
	}
	return frames
}

func TestControllerPassesOnTwoMouthOpenings(t *testing.T) {
	camera := &scriptedCamera{frames: framesFor(0.1, 0.8, 0.1, 0.8)}
	terminator := &countingTerminator{}
	controller := NewController(fastConfig(), camera, AttachedDetector{}, terminator)

	outcome := controller.Run(context.Background())

	if outcome.Status != StatusPassed {
		t.Fatalf("status = %v, want %v (%s)", outcome.Status, StatusPassed, outcome.Message)
	}
	if outcome.Attempts != 1 {
		t.Errorf("attempts = %v, want 1", outcome.Attempts)
	}
	if len(outcome.Descriptor) != 3 || outcome.Descriptor[2] != 3 {
		t.Errorf("descriptor = %v, want the last detection's descriptor", outcome.Descriptor)
	}
	if terminator.calls.Load() != 0 {
		t.Errorf("terminator called %d times on success", terminator.calls.Load())
	}
	if camera.closed.Load() != 1 {
		t.Errorf("camera closed %d times, want 1", camera.closed.Load())
	}
}

func TestControllerTimesOutOnSingleOpening(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 1
	camera := &scriptedCamera{frames: framesFor(0.1, 0.8, 0.45, 0.45, 0.45)}
	terminator := &countingTerminator{}
	controller := NewController(cfg, camera, AttachedDetector{}, terminator)

	outcome := controller.Run(context.Background())

	if outcome.Status != StatusLockedOut {
		t.Fatalf("status = %v, want %v", outcome.Status, StatusLockedOut)
	}
	if outcome.Reason != ReasonTimeout {
		t.Errorf("reason = %v, want %v", outcome.Reason, ReasonTimeout)
	}
	snapshot := controller.Snapshot()
	if snapshot.MouthOpenCount != 1 || snapshot.GestureState == GestureDone {
		t.Errorf("snapshot = %+v, want one opening and not DONE", snapshot)
	}
}

func TestControllerForcesLogoutOnceAfterThreeFailedAttempts(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxPolls = 5
	camera := &scriptedCamera{}
	terminator := &countingTerminator{}
	controller := NewController(cfg, camera, AttachedDetector{}, terminator)

	outcome := controller.Run(context.Background())

	if outcome.Status != StatusLockedOut || outcome.Reason != ReasonTimeout {
		t.Fatalf("outcome = %+v, want locked out on timeout", outcome)
	}
	if outcome.Attempts != 3 {
		t.Errorf("attempts = %v, want 3", outcome.Attempts)
	}
	if outcome.Message != MessageLockout {
		t.Errorf("message = %q, want %q", outcome.Message, MessageLockout)
	}

	// later ticks must not fire the logout again
	for i := 0; i < 3; i++ {
		controller.terminator.Terminate(context.Background(), ReasonTimeout)
	}
	if got := terminator.calls.Load(); got != 1 {
		t.Errorf("terminator called %d times, want exactly 1", got)
	}
	if !controller.Terminated() {
		t.Errorf("expected controller to report termination")
	}
}

func TestControllerWallClockTimeout(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 2
	cfg.MaxPolls = 1_000_000
	cfg.AttemptTimeout = 30 * time.Millisecond
	camera := &scriptedCamera{}
	terminator := &countingTerminator{}
	controller := NewController(cfg, camera, AttachedDetector{}, terminator)

	started := time.Now()
	outcome := controller.Run(context.Background())

	if outcome.Status != StatusLockedOut || outcome.Attempts != 2 {
		t.Fatalf("outcome = %+v, want locked out after 2 attempts", outcome)
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Errorf("run took %v, the attempt timer did not fire", elapsed)
	}
}

func TestControllerSpoofingShortCircuitsAttempts(t *testing.T) {
	frames := make([]Frame, 10)
	for i := range frames {
		frames[i] = staticFrame(i, 0.45)
	}
	camera := &scriptedCamera{frames: frames}
	terminator := &countingTerminator{}
	controller := NewController(fastConfig(), camera, AttachedDetector{}, terminator)

	outcome := controller.Run(context.Background())

	if outcome.Status != StatusLockedOut || outcome.Reason != ReasonSpoofing {
		t.Fatalf("outcome = %+v, want locked out for spoofing", outcome)
	}
	if outcome.Attempts != 1 {
		t.Errorf("attempts = %v, want 1", outcome.Attempts)
	}
	if terminator.calls.Load() != 1 {
		t.Errorf("terminator called %d times, want 1", terminator.calls.Load())
	}
	if reason := terminator.reason.Load(); reason != ReasonSpoofing {
		t.Errorf("terminate reason = %v, want %v", reason, ReasonSpoofing)
	}
	snapshot := controller.Snapshot()
	if !snapshot.SpoofingFlagged || snapshot.SpoofCheck != SpoofCheckUniformMovement {
		t.Errorf("snapshot = %+v, want spoofing flagged by uniform movement", snapshot)
	}
}

func TestControllerSkipsLowConfidenceAndMissingFaces(t *testing.T) {
	frames := framesFor(0.1, 0.8, 0.1, 0.8)
	weak := naturalFrame(9, 0.1)
	weak.Detection.Score = 0.2
	noFace := naturalFrame(10, 0.8)
	noFace.Detection = nil
	script := []Frame{frames[0], weak, frames[1], noFace, frames[2], frames[3]}

	camera := &scriptedCamera{frames: script}
	controller := NewController(fastConfig(), camera, AttachedDetector{}, &countingTerminator{})

	outcome := controller.Run(context.Background())
	if outcome.Status != StatusPassed {
		t.Fatalf("status = %v, want %v", outcome.Status, StatusPassed)
	}
	if got := controller.History().Len(); got != 4 {
		t.Errorf("history holds %d samples, want 4", got)
	}
}

func TestControllerCameraErrorIsNotRetried(t *testing.T) {
	camera := &scriptedCamera{err: ErrCameraUnavailable}
	terminator := &countingTerminator{}
	controller := NewController(fastConfig(), camera, AttachedDetector{}, terminator)

	outcome := controller.Run(context.Background())

	if outcome.Status != StatusCameraError || outcome.Attempts != 1 {
		t.Fatalf("outcome = %+v, want camera error on the first attempt", outcome)
	}
	if terminator.calls.Load() != 0 {
		t.Errorf("terminator must not fire on camera errors")
	}
	if camera.closed.Load() != 1 {
		t.Errorf("camera closed %d times, want 1", camera.closed.Load())
	}
}

func TestControllerCancelReleasesCamera(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxPolls = 1_000_000
	cfg.AttemptTimeout = time.Minute
	camera := &scriptedCamera{}
	controller := NewController(cfg, camera, AttachedDetector{}, &countingTerminator{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Outcome, 1)
	go func() { done <- controller.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case outcome := <-done:
		if outcome.Status != StatusCancelled {
			t.Errorf("status = %v, want %v", outcome.Status, StatusCancelled)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	if camera.closed.Load() != 1 {
		t.Errorf("camera closed %d times, want 1", camera.closed.Load())
	}
	if controller.Terminated() {
		t.Errorf("cancellation must not sign the user out")
	}
}

func TestControllerHistoryAcrossAttempts(t *testing.T) {
	run := func(reset bool) int {
		cfg := fastConfig()
		cfg.MaxAttempts = 2
		cfg.MaxPolls = 8
		cfg.ResetHistoryPerAttempt = reset
		cfg.DisableSpoofing = true
		// five flat frames per attempt, never completing the gesture
		frames := make([]Frame, 0, 10)
		for i := 0; i < 10; i++ {
			frames = append(frames, naturalFrame(i, 0.45))
		}
		camera := &pacedCamera{scriptedCamera: scriptedCamera{frames: frames}, perAttempt: 5}
		controller := NewController(cfg, camera, AttachedDetector{}, &countingTerminator{})
		camera.controller = controller
		controller.Run(context.Background())
		return controller.History().Len()
	}

	if got := run(false); got != 10 {
		t.Errorf("history kept %d samples across attempts, want 10", got)
	}
	if got := run(true); got != 5 {
		t.Errorf("history kept %d samples with per-attempt reset, want 5", got)
	}
}

// pacedCamera hands out perAttempt frames to each attempt.
type pacedCamera struct {
	scriptedCamera
	perAttempt int
	controller *Controller
	served     map[int]int
}

func (c *pacedCamera) Capture(ctx context.Context) (*Frame, error) {
	attempt := c.controller.Snapshot().AttemptNumber
	c.mu.Lock()
	if c.served == nil {
		c.served = map[int]int{}
	}
	if c.served[attempt] >= c.perAttempt {
		c.mu.Unlock()
		return nil, nil
	}
	c.served[attempt]++
	c.mu.Unlock()
	return c.scriptedCamera.Capture(ctx)
}

func TestFrameFeed(t *testing.T) {
	feed := NewFrameFeed()
	ctx := context.Background()

	if frame, err := feed.Capture(ctx); frame != nil || err != nil {
		t.Fatalf("empty feed returned %v, %v", frame, err)
	}
	if err := feed.Push(naturalFrame(0, 0.1)); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if frame, _ := feed.Capture(ctx); frame == nil {
		t.Fatalf("expected the pushed frame")
	}
	if frame, _ := feed.Capture(ctx); frame != nil {
		t.Errorf("a frame must only be captured once")
	}

	feed.Close()
	if err := feed.Push(naturalFrame(1, 0.1)); err != ErrFeedClosed {
		t.Errorf("push after close = %v, want %v", err, ErrFeedClosed)
	}
	if _, err := feed.Capture(ctx); err != ErrFeedClosed {
		t.Errorf("capture after close = %v, want %v", err, ErrFeedClosed)
	}
}

func TestFrameFeedFail(t *testing.T) {
	feed := NewFrameFeed()
	ctx := context.Background()
	if err := feed.Push(naturalFrame(0, 0.1)); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if err := feed.Fail("permission_denied"); err != nil {
		t.Fatalf("Fail() = %v", err)
	}
	if _, err := feed.Capture(ctx); !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("capture after failure = %v, want %v", err, ErrCameraUnavailable)
	}
	if err := feed.Push(naturalFrame(1, 0.1)); !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("push after failure = %v, want %v", err, ErrCameraUnavailable)
	}

	feed.Close()
	if err := feed.Fail("device_lost"); err != ErrFeedClosed {
		t.Errorf("Fail() after close = %v, want %v", err, ErrFeedClosed)
	}
}

func TestControllerEndsOnReportedCameraFailure(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxPolls = 1_000_000
	cfg.AttemptTimeout = time.Minute
	feed := NewFrameFeed()
	terminator := &countingTerminator{}
	controller := NewController(cfg, feed, AttachedDetector{}, terminator)

	done := make(chan Outcome, 1)
	go func() { done <- controller.Run(context.Background()) }()
	feed.Fail("device_lost")

	select {
	case outcome := <-done:
		if outcome.Status != StatusCameraError || outcome.Reason != ReasonCamera {
			t.Errorf("outcome = %+v, want camera error", outcome)
		}
		if outcome.Attempts != 1 {
			t.Errorf("attempts = %v, want 1", outcome.Attempts)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not end after the camera failed")
	}
	if terminator.calls.Load() != 0 {
		t.Errorf("terminator must not fire on camera errors")
	}
	if !feed.Closed() {
		t.Errorf("camera was not released")
	}
}

func TestZeroConfigKeepsSpoofingChecksOn(t *testing.T) {
	frames := make([]Frame, 10)
	for i := range frames {
		frames[i] = staticFrame(i, 0.45)
	}
	camera := &scriptedCamera{frames: frames}
	terminator := &countingTerminator{}
	controller := NewController(Config{SampleInterval: time.Millisecond}, camera, AttachedDetector{}, terminator)

	outcome := controller.Run(context.Background())

	if outcome.Status != StatusLockedOut || outcome.Reason != ReasonSpoofing {
		t.Fatalf("outcome = %+v, want locked out for spoofing", outcome)
	}
}
