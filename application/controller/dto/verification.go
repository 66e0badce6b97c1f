package dto

import (
	"encoding/base64"
	"time"

	"hrms.io/application/liveness"
)

type StartVerificationDTO struct {
	Action string `json:"action" validate:"required,verification_action"`
}

type BoxDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type DetectionDTO struct {
	Box        BoxDTO           `json:"box" validate:"required"`
	Landmarks  []liveness.Point `json:"landmarks" validate:"required,len=68|len=20"`
	Score      float64          `json:"score" validate:"gte=0,lte=1"`
	Descriptor []float32        `json:"descriptor,omitempty" validate:"omitempty,descriptor"`
}

// CameraErrorDTO reports a client camera that failed or lost permission.
type CameraErrorDTO struct {
	Reason string `json:"reason" validate:"required,oneof=permission_denied device_not_found device_in_use device_lost"`
}

// FrameDTO is one sampling tick pushed by the client. Pixels is a base64
// RGBA buffer; clients that cannot send it report Brightness instead.
type FrameDTO struct {
	Timestamp  int64         `json:"timestamp" validate:"gte=0"` // unix milliseconds
	Brightness *float64      `json:"brightness,omitempty" validate:"omitempty,gte=0,lte=255"`
	Pixels     string        `json:"pixels,omitempty" validate:"omitempty,base64"`
	Detection  *DetectionDTO `json:"detection,omitempty"`
}

func (f *FrameDTO) ToFrame() (liveness.Frame, error) {
	frame := liveness.Frame{
		Timestamp:  time.UnixMilli(f.Timestamp),
		Brightness: f.Brightness,
	}
	if f.Timestamp == 0 {
		frame.Timestamp = time.Now()
	}
	if f.Pixels != "" {
		pixels, err := base64.StdEncoding.DecodeString(f.Pixels)
		if err != nil {
			return liveness.Frame{}, err
		}
		frame.Pixels = pixels
	}
	if f.Detection != nil {
		frame.Detection = &liveness.Detection{
			Box: liveness.Box{
				X:      f.Detection.Box.X,
				Y:      f.Detection.Box.Y,
				Width:  f.Detection.Box.Width,
				Height: f.Detection.Box.Height,
			},
			Landmarks:  f.Detection.Landmarks,
			Score:      f.Detection.Score,
			Descriptor: f.Detection.Descriptor,
		}
	}
	return frame, nil
}

type RunStartedResponse struct {
	RunID  string `json:"run_id"`
	Action string `json:"action"`
}

type VerificationLogsResponse struct {
	Logs  any   `json:"logs"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
}
