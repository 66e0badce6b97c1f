package verification_usecases

import (
	"context"
	"sync"
	"time"

	"hrms.io/application/liveness"
	"hrms.io/entities"
)

type RunStatus string

const (
	StatusInProgress  RunStatus = "in_progress"
	StatusCompleted   RunStatus = "completed"
	StatusRejected    RunStatus = "rejected"
	StatusFailed      RunStatus = "failed"
	StatusLockedOut   RunStatus = "locked_out"
	StatusCancelled   RunStatus = "cancelled"
	StatusCameraError RunStatus = "camera_error"
)

// ClientInfo describes the device the run was started from.
type ClientInfo struct {
	DeviceName string
	UserAgent  string
	IPAddress  string
}

// Result is the final state of a run once the liveness check and any
// backend action have finished.
type Result struct {
	Status       RunStatus                  `json:"status"`
	Reason       liveness.Reason            `json:"reason,omitempty"`
	Attempts     int                        `json:"attempts"`
	Message      string                     `json:"message"`
	ResponseCode *uint                      `json:"response_code,omitempty"`
	Distance     float64                    `json:"distance,omitempty"`
	Attendance   *entities.AttendanceRecord `json:"attendance,omitempty"`
	FinishedAt   time.Time                  `json:"finished_at"`
}

// RunView is what a client sees when it polls a run.
type RunView struct {
	RunID    string            `json:"run_id"`
	Action   string            `json:"action"`
	Status   RunStatus         `json:"status"`
	Progress liveness.Snapshot `json:"progress"`
	Result   *Result           `json:"result,omitempty"`
}

// Run is one verification flow: a frame feed, the liveness controller
// reading from it and the backend action gated on its outcome.
type Run struct {
	ID        string
	SessionID string
	Action    string
	StartedAt time.Time

	session    entities.Session
	client     ClientInfo
	feed       *liveness.FrameFeed
	controller *liveness.Controller
	cancel     context.CancelFunc
	done       chan struct{}

	mu     sync.Mutex
	result *Result
}

// Done is closed once the run has a result.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

func (r *Run) Result() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return nil
	}
	result := *r.result
	return &result
}

func (r *Run) setResult(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = &result
}

func (r *Run) view() *RunView {
	view := &RunView{
		RunID:    r.ID,
		Action:   r.Action,
		Status:   StatusInProgress,
		Progress: r.controller.Snapshot(),
		Result:   r.Result(),
	}
	if view.Result != nil {
		view.Status = view.Result.Status
	}
	return view
}
