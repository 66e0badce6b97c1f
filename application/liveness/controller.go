package liveness

import (
	"context"
	"errors"
	"sync"
	"time"

	"hrms.io/infrastructure/logger"
)

// Camera is the scoped capture resource. Capture returns nil when no new
// frame is available yet.
type Camera interface {
	Capture(ctx context.Context) (*Frame, error)
	Close() error
}

// Detector wraps the face/landmark model. A nil detection (or ErrNoFace)
// means no face was found in the frame.
type Detector interface {
	Detect(ctx context.Context, frame *Frame) (*Detection, error)
}

// Terminator ends the user's session after a lockout.
type Terminator interface {
	Terminate(ctx context.Context, reason Reason) error
}

// OnceTerminator forwards only the first Terminate call.
type OnceTerminator struct {
	next  Terminator
	once  sync.Once
	err   error
	mu    sync.Mutex
	fired bool
}

func NewOnceTerminator(next Terminator) *OnceTerminator {
	return &OnceTerminator{next: next}
}

func (t *OnceTerminator) Terminate(ctx context.Context, reason Reason) error {
	t.once.Do(func() {
		t.mu.Lock()
		t.fired = true
		t.mu.Unlock()
		if t.next != nil {
			t.err = t.next.Terminate(ctx, reason)
		}
	})
	return t.err
}

func (t *OnceTerminator) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Snapshot is the attempt state shown to the user while a run is active.
type Snapshot struct {
	AttemptNumber   int          `json:"attempt_number"`
	MaxAttempts     int          `json:"max_attempts"`
	TimeRemaining   float64      `json:"time_remaining_seconds"`
	SpoofingFlagged bool         `json:"spoofing_flagged"`
	SpoofCheck      SpoofCheck   `json:"spoof_check,omitempty"`
	MouthOpenCount  int          `json:"mouth_open_count"`
	GestureState    GestureState `json:"gesture_state"`
	LastMAR         float64      `json:"last_mar"`
	Message         string       `json:"message"`
	Finished        bool         `json:"finished"`
}

type attemptResult struct {
	err     error
	verdict SpoofVerdict
}

// Controller runs up to MaxAttempts liveness attempts against a camera.
type Controller struct {
	cfg        Config
	camera     Camera
	detector   Detector
	terminator *OnceTerminator
	history    *History

	mu         sync.Mutex
	attempt    int
	deadline   time.Time
	spoofed    bool
	spoofCheck SpoofCheck
	gesture    GestureState
	openCount  int
	lastMAR    float64
	message    string
	finished   bool
	descriptor []float32

	started     bool
	cameraClose sync.Once
}

func NewController(cfg Config, camera Camera, detector Detector, terminator Terminator) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:        cfg,
		camera:     camera,
		detector:   detector,
		terminator: NewOnceTerminator(terminator),
		history:    NewHistory(cfg.HistorySize),
		gesture:    GestureWaitingOpen,
		message:    MessageInProgress,
	}
}

// Run blocks until the user passes, is locked out, the camera fails or ctx
// is cancelled. The camera is closed before Run returns.
func (c *Controller) Run(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return Outcome{Status: StatusCancelled, Message: ErrControllerFinished.Error()}
	}
	c.started = true
	c.mu.Unlock()

	defer c.releaseCamera()
	c.history.Reset()

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 && c.cfg.ResetHistoryPerAttempt {
			c.history.Reset()
		}
		result := c.runAttempt(ctx, attempt)

		switch {
		case result.err == nil:
			logger.Info("liveness attempt passed", logger.LoggerOptions{Key: "attempt", Data: attempt})
			return c.finish(Outcome{
				Status:     StatusPassed,
				Attempts:   attempt,
				Message:    MessagePassed,
				Descriptor: c.lastDescriptor(),
			})
		case errors.Is(result.err, ErrSpoofingSuspected):
			logger.Warning("spoofing suspected during liveness check", logger.LoggerOptions{
				Key:  "check",
				Data: result.verdict.Check,
			}, logger.LoggerOptions{
				Key:  "attempt",
				Data: attempt,
			})
			return c.lockout(ctx, ReasonSpoofing, attempt, MessageSpoofing)
		case errors.Is(result.err, ErrCameraUnavailable), errors.Is(result.err, ErrFeedClosed):
			return c.finish(Outcome{Status: StatusCameraError, Reason: ReasonCamera, Attempts: attempt, Message: MessageCamera})
		case ctx.Err() != nil:
			return c.finish(Outcome{Status: StatusCancelled, Attempts: attempt, Message: "verification cancelled"})
		default:
			logger.Info("liveness attempt timed out", logger.LoggerOptions{Key: "attempt", Data: attempt})
			c.setMessage(MessageGestureTimeout)
		}
	}

	return c.lockout(ctx, ReasonTimeout, c.cfg.MaxAttempts, MessageLockout)
}

// runAttempt races the poll loop against the attempt timer. Whichever
// settles first decides; the loser is abandoned and its results dropped.
func (c *Controller) runAttempt(parent context.Context, attempt int) attemptResult {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	c.beginAttempt(attempt)
	results := make(chan attemptResult, 1)
	go func() {
		results <- c.poll(ctx, attempt)
	}()

	timer := time.NewTimer(c.cfg.AttemptTimeout)
	defer timer.Stop()

	select {
	case result := <-results:
		return result
	case <-timer.C:
		return attemptResult{err: ErrGestureTimeout}
	case <-parent.Done():
		return attemptResult{err: parent.Err()}
	}
}

func (c *Controller) poll(ctx context.Context, attempt int) attemptResult {
	gesture := NewGestureCounter(c.cfg)
	ticker := time.NewTicker(c.cfg.SampleInterval)
	defer ticker.Stop()

	for i := 0; i < c.cfg.MaxPolls; i++ {
		select {
		case <-ctx.Done():
			return attemptResult{err: ctx.Err()}
		case <-ticker.C:
		}

		frame, err := c.camera.Capture(ctx)
		if err != nil {
			if errors.Is(err, ErrCameraUnavailable) || errors.Is(err, ErrFeedClosed) {
				return attemptResult{err: err}
			}
			logger.Warning("frame capture failed", logger.LoggerOptions{Key: "error", Data: err})
			continue
		}
		if frame == nil {
			continue
		}

		detection, err := c.detector.Detect(ctx, frame)
		if err != nil && !errors.Is(err, ErrNoFace) {
			logger.Warning("face detection failed", logger.LoggerOptions{Key: "error", Data: err})
			continue
		}
		if detection == nil || detection.Score < c.cfg.MinDetectionScore {
			continue
		}

		verdict, state, ok := c.observe(ctx, attempt, frame, detection, gesture)
		if !ok {
			return attemptResult{err: context.Canceled}
		}
		if verdict.Suspected {
			return attemptResult{err: ErrSpoofingSuspected, verdict: verdict}
		}
		if state == GestureDone {
			return attemptResult{}
		}
	}
	return attemptResult{err: ErrGestureTimeout}
}

// observe records one accepted detection. It refuses once the attempt that
// produced the detection is no longer current.
func (c *Controller) observe(ctx context.Context, attempt int, frame *Frame, detection *Detection, gesture *GestureCounter) (SpoofVerdict, GestureState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || c.attempt != attempt || c.finished {
		return SpoofVerdict{}, gesture.State(), false
	}

	c.history.Push(newSample(frame, detection))
	if len(detection.Descriptor) > 0 {
		c.descriptor = detection.Descriptor
	}

	var verdict SpoofVerdict
	if !c.cfg.DisableSpoofing {
		verdict = DetectSpoofing(c.history.Samples(), c.cfg)
		if verdict.Suspected {
			c.spoofed = true
			c.spoofCheck = verdict.Check
		}
	}

	state := gesture.Observe(MouthAspectRatio(detection.Landmarks))
	c.gesture = state
	c.openCount = gesture.Count()
	c.lastMAR = gesture.LastMAR()
	return verdict, state, true
}

func (c *Controller) beginAttempt(attempt int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempt = attempt
	c.deadline = time.Now().Add(c.cfg.AttemptTimeout)
	c.gesture = GestureWaitingOpen
	c.openCount = 0
	c.lastMAR = 0
	if attempt == 1 {
		c.message = MessageInProgress
	}
}

func (c *Controller) lockout(ctx context.Context, reason Reason, attempts int, message string) Outcome {
	if err := c.terminator.Terminate(context.WithoutCancel(ctx), reason); err != nil {
		logger.Error("could not terminate session after liveness lockout", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "reason",
			Data: reason,
		})
	}
	return c.finish(Outcome{Status: StatusLockedOut, Reason: reason, Attempts: attempts, Message: message})
}

func (c *Controller) finish(outcome Outcome) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished = true
	c.message = outcome.Message
	return outcome
}

func (c *Controller) setMessage(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = message
}

func (c *Controller) lastDescriptor() []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.descriptor == nil {
		return nil
	}
	out := make([]float32, len(c.descriptor))
	copy(out, c.descriptor)
	return out
}

func (c *Controller) releaseCamera() {
	c.cameraClose.Do(func() {
		if err := c.camera.Close(); err != nil {
			logger.Warning("failed to release camera", logger.LoggerOptions{Key: "error", Data: err})
		}
	})
}

// Terminated reports whether the forced logout has fired.
func (c *Controller) Terminated() bool {
	return c.terminator.Fired()
}

// History exposes the spoofing window, mainly for diagnostics.
func (c *Controller) History() *History {
	return c.history
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := 0.0
	if !c.finished && !c.deadline.IsZero() {
		remaining = time.Until(c.deadline).Seconds()
		if remaining < 0 {
			remaining = 0
		}
	}
	return Snapshot{
		AttemptNumber:   c.attempt,
		MaxAttempts:     c.cfg.MaxAttempts,
		TimeRemaining:   remaining,
		SpoofingFlagged: c.spoofed,
		SpoofCheck:      c.spoofCheck,
		MouthOpenCount:  c.openCount,
		GestureState:    c.gesture,
		LastMAR:         c.lastMAR,
		Message:         c.message,
		Finished:        c.finished,
	}
}
