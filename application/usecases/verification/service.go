package verification_usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"hrms.io/application/constants"
	"hrms.io/application/liveness"
	"hrms.io/application/utils"
	"hrms.io/entities"
	"hrms.io/infrastructure/hrbackend"
	"hrms.io/infrastructure/logger"
	mq_types "hrms.io/infrastructure/message_queue/types"
	"hrms.io/infrastructure/realtime"
)

var (
	ErrRunNotFound   = errors.New("verification run not found")
	ErrRunFinished   = errors.New("verification run has already finished")
	ErrInvalidAction = errors.New("unsupported verification action")
)

type Backend interface {
	VerifyFace(ctx context.Context, payload hrbackend.VerifyFaceRequest) (*entities.FaceMatch, error)
	RegisterFace(ctx context.Context, payload hrbackend.RegisterFaceRequest) (*entities.FaceRegistration, error)
	TimeIn(ctx context.Context, employeeID string) (*entities.AttendanceRecord, error)
	TimeOut(ctx context.Context, employeeID string) (*entities.AttendanceRecord, error)
}

type SessionTerminator interface {
	Terminate(ctx context.Context, session *entities.Session, reason string) error
}

type LogWriter interface {
	CreateOne(ctx context.Context, payload entities.VerificationLog) (*entities.VerificationLog, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, channel string, event realtime.Event) error
}

// Service owns every verification run of the process. Runs are keyed by id
// and at most one is active per session.
type Service struct {
	Config   liveness.Config
	Detector liveness.Detector
	Backend  Backend
	Sessions SessionTerminator
	Logs     LogWriter
	Events   EventPublisher
	Queue    mq_types.TaskQueueBroker
	Now      func() time.Time

	mu        sync.Mutex
	active    map[string]*Run
	bySession map[string]string
	finished  *cache.Cache
	wg        sync.WaitGroup
}

func NewService(cfg liveness.Config, backend Backend, sessions SessionTerminator, logs LogWriter, events EventPublisher, queue mq_types.TaskQueueBroker) *Service {
	return &Service{
		Config:    cfg,
		Detector:  liveness.AttachedDetector{},
		Backend:   backend,
		Sessions:  sessions,
		Logs:      logs,
		Events:    events,
		Queue:     queue,
		Now:       time.Now,
		active:    map[string]*Run{},
		bySession: map[string]string{},
		finished:  cache.New(constants.FINISHED_RUN_TTL, time.Minute),
	}
}

// Start opens a new run for the session. A run already active for the same
// session is cancelled first.
func (s *Service) Start(ctx context.Context, session *entities.Session, action string, client ClientInfo) (*Run, error) {
	if !utils.HasItemString(&constants.VERIFICATION_ACTIONS, action) {
		return nil, ErrInvalidAction
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	run := &Run{
		ID:        utils.GenerateUULDString(),
		SessionID: session.ID,
		Action:    action,
		StartedAt: s.Now(),
		session:   *session,
		client:    client,
		feed:      liveness.NewFrameFeed(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	run.controller = liveness.NewController(s.Config, run.feed, s.Detector, &lockoutTerminator{service: s, run: run})

	s.mu.Lock()
	if previousID, ok := s.bySession[session.ID]; ok {
		if previous := s.active[previousID]; previous != nil {
			logger.Info("cancelling previous verification run", logger.LoggerOptions{
				Key:  "runID",
				Data: previousID,
			})
			previous.cancel()
		}
	}
	s.active[run.ID] = run
	s.bySession[session.ID] = run.ID
	s.wg.Add(1)
	s.mu.Unlock()

	logger.Info("verification run started", logger.LoggerOptions{
		Key:  "runID",
		Data: run.ID,
	}, logger.LoggerOptions{
		Key:  "action",
		Data: action,
	}, logger.LoggerOptions{
		Key:  "userID",
		Data: session.UserID,
	})

	go s.execute(runCtx, run)
	return run, nil
}

// PushFrame hands the latest client frame to the run's camera.
func (s *Service) PushFrame(runID string, sessionID string, frame liveness.Frame) error {
	run, finished := s.lookup(runID, sessionID)
	if run == nil {
		return ErrRunNotFound
	}
	if finished {
		return ErrRunFinished
	}
	if err := run.feed.Push(frame); err != nil {
		if errors.Is(err, liveness.ErrFeedClosed) || errors.Is(err, liveness.ErrCameraUnavailable) {
			return ErrRunFinished
		}
		return err
	}
	return nil
}

// ReportCameraError ends the run as camera_error on the next sampling tick.
// The session is left untouched.
func (s *Service) ReportCameraError(runID string, sessionID string, reason string) error {
	run, finished := s.lookup(runID, sessionID)
	if run == nil {
		return ErrRunNotFound
	}
	if finished {
		return ErrRunFinished
	}
	if err := run.feed.Fail(reason); err != nil {
		return ErrRunFinished
	}
	logger.Warning("client reported a camera error", logger.LoggerOptions{
		Key:  "runID",
		Data: run.ID,
	}, logger.LoggerOptions{
		Key:  "reason",
		Data: reason,
	})
	return nil
}

func (s *Service) Status(runID string, sessionID string) (*RunView, error) {
	run, _ := s.lookup(runID, sessionID)
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run.view(), nil
}

// Cancel stops an active run and releases its camera. Cancelling a run that
// already finished is a no-op.
func (s *Service) Cancel(runID string, sessionID string) error {
	run, finished := s.lookup(runID, sessionID)
	if run == nil {
		return ErrRunNotFound
	}
	if !finished {
		run.cancel()
	}
	return nil
}

// Shutdown cancels every active run and waits for them to settle.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, run := range s.active {
		run.cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) lookup(runID string, sessionID string) (*Run, bool) {
	s.mu.Lock()
	run, ok := s.active[runID]
	s.mu.Unlock()
	finished := false
	if !ok {
		cached, found := s.finished.Get(runID)
		if !found {
			return nil, false
		}
		run = cached.(*Run)
		finished = true
	}
	if run.SessionID != sessionID {
		return nil, false
	}
	return run, finished
}

func (s *Service) execute(ctx context.Context, run *Run) {
	defer s.wg.Done()
	defer run.cancel()

	outcome := run.controller.Run(ctx)
	result := s.complete(context.WithoutCancel(ctx), run, outcome)
	result.FinishedAt = s.Now()
	run.setResult(result)

	s.record(context.WithoutCancel(ctx), run, result)

	s.mu.Lock()
	delete(s.active, run.ID)
	if s.bySession[run.SessionID] == run.ID {
		delete(s.bySession, run.SessionID)
	}
	s.finished.SetDefault(run.ID, run)
	s.mu.Unlock()
	close(run.done)
}
