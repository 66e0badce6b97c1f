package verification_usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hrms.io/application/constants"
	"hrms.io/application/liveness"
	"hrms.io/application/utils"
	"hrms.io/entities"
	"hrms.io/infrastructure/hrbackend"
	"hrms.io/infrastructure/logger"
	queue_tasks "hrms.io/infrastructure/message_queue/tasks"
	mq_types "hrms.io/infrastructure/message_queue/types"
	"hrms.io/infrastructure/realtime"
)

const (
	messageRejected       = "Your face did not match the registered employee."
	messageNotRegistered  = "No face is registered for your account yet. Register your face first."
	messageBackendFailed  = "We could not reach the HR service. Please try again."
	messageMissingFace    = "We could not capture your face clearly. Please try again."
	messageFaceRegistered = "Your face has been registered."
	messageTimedIn        = "You have timed in."
	messageTimedOut       = "You have timed out."
)

// complete turns the liveness outcome into the run's result, calling the
// backend when the user passed.
func (s *Service) complete(ctx context.Context, run *Run, outcome liveness.Outcome) Result {
	result := Result{
		Reason:   outcome.Reason,
		Attempts: outcome.Attempts,
		Message:  outcome.Message,
	}
	switch outcome.Status {
	case liveness.StatusPassed:
		return s.act(ctx, run, outcome, result)
	case liveness.StatusLockedOut:
		result.Status = StatusLockedOut
		result.ResponseCode = utils.GetUIntPointer(constants.LIVENESS_LOCKOUT)
		if outcome.Reason == liveness.ReasonSpoofing {
			result.ResponseCode = utils.GetUIntPointer(constants.SPOOFING_SUSPECTED)
		}
	case liveness.StatusCameraError:
		result.Status = StatusCameraError
	default:
		result.Status = StatusCancelled
	}
	return result
}

func (s *Service) act(ctx context.Context, run *Run, outcome liveness.Outcome, result Result) Result {
	employeeID := run.session.EmployeeID
	if len(outcome.Descriptor) != constants.FACE_DESCRIPTOR_LENGTH {
		logger.Warning("liveness passed without a usable face descriptor", logger.LoggerOptions{
			Key:  "runID",
			Data: run.ID,
		}, logger.LoggerOptions{
			Key:  "descriptorLength",
			Data: len(outcome.Descriptor),
		})
		result.Status = StatusFailed
		result.Message = messageMissingFace
		return result
	}

	if run.Action == constants.ActionRegisterFace {
		_, err := s.Backend.RegisterFace(ctx, hrbackend.RegisterFaceRequest{
			EmployeeID: employeeID,
			Descriptor: outcome.Descriptor,
		})
		if err != nil {
			return backendFailure(run, result, err)
		}
		result.Status = StatusCompleted
		result.Message = messageFaceRegistered
		return result
	}

	match, err := s.Backend.VerifyFace(ctx, hrbackend.VerifyFaceRequest{
		EmployeeID: employeeID,
		Descriptor: outcome.Descriptor,
		Action:     run.Action,
	})
	if err != nil {
		return backendFailure(run, result, err)
	}
	result.Distance = match.Distance
	if !match.Matched {
		result.Status = StatusRejected
		result.Message = messageRejected
		if match.Message != "" {
			result.Message = match.Message
		}
		result.ResponseCode = utils.GetUIntPointer(constants.FACE_NOT_RECOGNISED)
		return result
	}

	var record *entities.AttendanceRecord
	if run.Action == constants.ActionTimeIn {
		record, err = s.Backend.TimeIn(ctx, employeeID)
		result.Message = messageTimedIn
	} else {
		record, err = s.Backend.TimeOut(ctx, employeeID)
		result.Message = messageTimedOut
	}
	if err != nil {
		return backendFailure(run, result, err)
	}
	result.Status = StatusCompleted
	result.Attendance = record
	s.publish(ctx, run, realtime.Event{
		Type: constants.EventAttendanceRecorded,
		Payload: map[string]any{
			"action":     run.Action,
			"employeeID": employeeID,
			"attendance": record,
		},
	})
	return result
}

func backendFailure(run *Run, result Result, err error) Result {
	logger.Error("hr backend call failed after liveness passed", logger.LoggerOptions{
		Key:  "runID",
		Data: run.ID,
	}, logger.LoggerOptions{
		Key:  "action",
		Data: run.Action,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	result.Status = StatusFailed
	result.Message = messageBackendFailed
	var apiErr *hrbackend.APIError
	switch {
	case errors.Is(err, hrbackend.ErrFaceNotRegistered):
		result.Message = messageNotRegistered
		result.ResponseCode = utils.GetUIntPointer(constants.FACE_NOT_REGISTERED)
	case errors.As(err, &apiErr) && apiErr.Message != "":
		result.Message = apiErr.Message
	}
	return result
}

// record writes the audit entry and tells the user's clients and the admin
// dashboard that the run is over.
func (s *Service) record(ctx context.Context, run *Run, result Result) {
	snapshot := run.controller.Snapshot()
	entry := entities.VerificationLog{
		RunID:      run.ID,
		SessionID:  run.SessionID,
		UserID:     run.session.UserID,
		EmployeeID: run.session.EmployeeID,
		Action:     run.Action,
		Status:     string(result.Status),
		Reason:     string(result.Reason),
		SpoofCheck: string(snapshot.SpoofCheck),
		Attempts:   result.Attempts,
		Duration:   result.FinishedAt.Sub(run.StartedAt).Milliseconds(),
		DeviceName: run.client.DeviceName,
		UserAgent:  run.client.UserAgent,
		IPAddress:  run.client.IPAddress,
		Distance:   result.Distance,
	}
	if s.Logs != nil {
		if _, err := s.Logs.CreateOne(ctx, entry); err != nil {
			logger.Error("failed to write verification log", logger.LoggerOptions{
				Key:  "runID",
				Data: run.ID,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}

	logger.Info("verification run finished", logger.LoggerOptions{
		Key:  "runID",
		Data: run.ID,
	}, logger.LoggerOptions{
		Key:  "status",
		Data: result.Status,
	}, logger.LoggerOptions{
		Key:  "attempts",
		Data: result.Attempts,
	})

	s.publish(ctx, run, realtime.Event{
		Type: constants.EventVerificationCompleted,
		Payload: map[string]any{
			"runID":      run.ID,
			"userID":     run.session.UserID,
			"employeeID": run.session.EmployeeID,
			"action":     run.Action,
			"status":     result.Status,
			"reason":     result.Reason,
			"attempts":   result.Attempts,
		},
	})
}

// publish sends the event to the user's own channel and the admin channel.
func (s *Service) publish(ctx context.Context, run *Run, event realtime.Event) {
	if s.Events == nil {
		return
	}
	for _, channel := range []string{constants.EmployeeChannel(run.session.UserID), constants.ADMIN_CHANNEL} {
		if err := s.Events.Publish(ctx, channel, event); err != nil {
			logger.Warning("failed to publish verification event", logger.LoggerOptions{
				Key:  "channel",
				Data: channel,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}
}

// lockoutTerminator signs the user out and queues the security email. The
// controller guarantees it runs at most once per run.
type lockoutTerminator struct {
	service *Service
	run     *Run
}

func (t *lockoutTerminator) Terminate(ctx context.Context, reason liveness.Reason) error {
	var err error
	if t.service.Sessions != nil {
		err = t.service.Sessions.Terminate(ctx, &t.run.session, string(reason))
	}
	t.service.notifyLockout(t.run, reason)
	return err
}

func (s *Service) notifyLockout(run *Run, reason liveness.Reason) {
	if s.Queue == nil {
		return
	}
	snapshot := run.controller.Snapshot()
	payload, err := json.Marshal(queue_tasks.SecurityLockoutPayload{
		Email:      run.session.Email,
		FirstName:  run.session.FirstName,
		UserID:     run.session.UserID,
		RunID:      run.ID,
		Action:     run.Action,
		Reason:     string(reason),
		Attempts:   snapshot.AttemptNumber,
		DeviceName: run.client.DeviceName,
		OccurredAt: s.Now().Format(time.RFC1123),
	})
	if err != nil {
		logger.Error("failed to marshal security lockout payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	s.Queue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleSecurityLockoutTaskName,
		Payload:  payload,
		Priority: mq_types.High,
	})
}
