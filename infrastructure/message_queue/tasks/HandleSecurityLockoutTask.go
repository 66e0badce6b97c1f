package queue_tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"hrms.io/application/constants"
	"hrms.io/infrastructure/logger"
	mq_types "hrms.io/infrastructure/message_queue/types"
	"hrms.io/infrastructure/messaging/emails"
)

var HandleSecurityLockoutTaskName mq_types.Queues = "security_lockout_notification"

type SecurityLockoutPayload struct {
	Email      string
	FirstName  string
	UserID     string
	RunID      string
	Action     string
	Reason     string
	Attempts   int
	DeviceName string
	OccurredAt string
}

func HandleSecurityLockoutTask(ctx context.Context, t *asynq.Task) error {
	var payload SecurityLockoutPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling security lockout payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.Email == "" {
		logger.Warning("security lockout notification skipped, user has no email", logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		})
		return nil
	}
	err = emails.Mailer.Send(emails.Message{
		To:       payload.Email,
		Subject:  "Your attendance verification was locked",
		Template: "security_lockout",
		Data: map[string]any{
			"FirstName":    payload.FirstName,
			"Action":       actionLabel(payload.Action),
			"Reason":       payload.Reason,
			"Attempts":     payload.Attempts,
			"DeviceName":   payload.DeviceName,
			"OccurredAt":   payload.OccurredAt,
			"SupportEmail": constants.SUPPORT_EMAIL,
		},
	})
	if errors.Is(err, emails.ErrSenderNotConfigured) {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if err != nil {
		return fmt.Errorf("security lockout email for run %s: %w", payload.RunID, err)
	}
	return nil
}

func actionLabel(action string) string {
	switch action {
	case constants.ActionTimeIn:
		return "time in"
	case constants.ActionTimeOut:
		return "time out"
	case constants.ActionRegisterFace:
		return "face registration"
	}
	return action
}
