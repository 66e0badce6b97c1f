package queue_tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hrms.io/infrastructure/messaging/emails"
)

type fakeMailer struct {
	sent []emails.Message
	err  error
}

func (f *fakeMailer) Send(message emails.Message) error {
	f.sent = append(f.sent, message)
	return f.err
}

func useMailer(t *testing.T, mailer emails.Sender) {
	previous := emails.Mailer
	emails.Mailer = mailer
	t.Cleanup(func() { emails.Mailer = previous })
}

func lockoutTask(t *testing.T, payload SecurityLockoutPayload) *asynq.Task {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(string(HandleSecurityLockoutTaskName), data)
}

func TestHandleSecurityLockoutTaskSendsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	useMailer(t, mailer)

	err := HandleSecurityLockoutTask(context.Background(), lockoutTask(t, SecurityLockoutPayload{
		Email:     "ada@hrms.io",
		FirstName: "Ada",
		RunID:     "run-1",
		Action:    "time_in",
		Reason:    "spoofing",
		Attempts:  1,
	}))

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@hrms.io", mailer.sent[0].To)
	assert.Equal(t, "security_lockout", mailer.sent[0].Template)
	assert.Equal(t, "time in", mailer.sent[0].Data["Action"])
	assert.Equal(t, "spoofing", mailer.sent[0].Data["Reason"])
}

func TestHandleSecurityLockoutTaskWithoutEmail(t *testing.T) {
	mailer := &fakeMailer{}
	useMailer(t, mailer)

	err := HandleSecurityLockoutTask(context.Background(), lockoutTask(t, SecurityLockoutPayload{UserID: "u1"}))

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleSecurityLockoutTaskRetriesFailedDelivery(t *testing.T) {
	useMailer(t, &fakeMailer{err: errors.New("resend: 500")})

	err := HandleSecurityLockoutTask(context.Background(), lockoutTask(t, SecurityLockoutPayload{Email: "ada@hrms.io", RunID: "run-2"}))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleSecurityLockoutTaskSkipsBadPayload(t *testing.T) {
	useMailer(t, &fakeMailer{})

	err := HandleSecurityLockoutTask(context.Background(), asynq.NewTask(string(HandleSecurityLockoutTaskName), []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleSecurityLockoutTaskWithoutMailerConfig(t *testing.T) {
	useMailer(t, &fakeMailer{err: emails.ErrSenderNotConfigured})

	err := HandleSecurityLockoutTask(context.Background(), lockoutTask(t, SecurityLockoutPayload{Email: "ada@hrms.io", RunID: "run-3"}))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
