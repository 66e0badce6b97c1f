package verification_usecases

import (
	"hrms.io/application/liveness"
	"hrms.io/infrastructure/env"
)

// LivenessConfigFromEnv reads LIVENESS_* overrides on top of the defaults.
func LivenessConfigFromEnv() liveness.Config {
	d := liveness.DefaultConfig()
	return liveness.Config{
		OpenThreshold:          env.Float("LIVENESS_OPEN_THRESHOLD", d.OpenThreshold),
		ClosedThreshold:        env.Float("LIVENESS_CLOSED_THRESHOLD", d.ClosedThreshold),
		CloseConfirmSamples:    env.Int("LIVENESS_CLOSE_CONFIRM_SAMPLES", d.CloseConfirmSamples),
		MaxPolls:               env.Int("LIVENESS_MAX_POLLS", d.MaxPolls),
		SampleInterval:         env.Duration("LIVENESS_SAMPLE_INTERVAL", d.SampleInterval),
		AttemptTimeout:         env.Duration("LIVENESS_ATTEMPT_TIMEOUT", d.AttemptTimeout),
		MaxAttempts:            env.Int("LIVENESS_MAX_ATTEMPTS", d.MaxAttempts),
		HistorySize:            env.Int("LIVENESS_HISTORY_SIZE", d.HistorySize),
		MinSpoofSamples:        env.Int("LIVENESS_MIN_SPOOF_SAMPLES", d.MinSpoofSamples),
		UniformMovementDelta:   env.Float("LIVENESS_UNIFORM_MOVEMENT_DELTA", d.UniformMovementDelta),
		UniformMovementRun:     env.Int("LIVENESS_UNIFORM_MOVEMENT_RUN", d.UniformMovementRun),
		MinTotalMovement:       env.Float("LIVENESS_MIN_TOTAL_MOVEMENT", d.MinTotalMovement),
		BrightnessDelta:        env.Float("LIVENESS_BRIGHTNESS_DELTA", d.BrightnessDelta),
		MinDetectionScore:      env.Float("LIVENESS_MIN_DETECTION_SCORE", d.MinDetectionScore),
		GestureTarget:          env.Int("LIVENESS_GESTURE_TARGET", d.GestureTarget),
		ResetHistoryPerAttempt: env.Bool("LIVENESS_RESET_HISTORY_PER_ATTEMPT", d.ResetHistoryPerAttempt),
		RevokeUnconfirmedOpen:  env.Bool("LIVENESS_REVOKE_UNCONFIRMED_OPEN", d.RevokeUnconfirmedOpen),
		DisableSpoofing:        env.Bool("LIVENESS_DISABLE_SPOOFING", d.DisableSpoofing),
	}
}
