package hrbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hrms.io/entities"
	"hrms.io/infrastructure/logger"
	"hrms.io/infrastructure/network"
	"hrms.io/infrastructure/validator"
)

type Client struct {
	Network *network.NetworkController
	APIKey  string
}

func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	return &Client{
		Network: &network.NetworkController{
			BaseUrl: baseURL,
			Timeout: timeout,
		},
		APIKey: apiKey,
	}
}

func (c *Client) headers() *map[string]string {
	return &map[string]string{
		"x-api-key": c.APIKey,
	}
}

// VerifyFace submits a liveness-checked descriptor and reports whether it
// matches the employee's registered face.
func (c *Client) VerifyFace(ctx context.Context, payload VerifyFaceRequest) (*entities.FaceMatch, error) {
	if errs := validator.ValidatorInstance.ValidateStruct(payload); errs != nil {
		return nil, fmt.Errorf("invalid face verification payload: %v", *errs)
	}
	response, statusCode, err := c.Network.Post(ctx, "/face/verify", c.headers(), payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if *statusCode == http.StatusNotFound {
		return nil, ErrFaceNotRegistered
	}
	body, err := decode[faceMatchPayload](response, *statusCode, "face verification")
	if err != nil {
		return nil, err
	}
	match := &entities.FaceMatch{
		Matched: *body.Data.Match && *body.Success,
		Message: body.Message,
	}
	if body.Data.Distance != nil {
		match.Distance = *body.Data.Distance
	}
	logger.Info("face verification completed by hr backend", logger.LoggerOptions{
		Key:  "employeeID",
		Data: payload.EmployeeID,
	}, logger.LoggerOptions{
		Key:  "matched",
		Data: match.Matched,
	})
	return match, nil
}

func (c *Client) RegisterFace(ctx context.Context, payload RegisterFaceRequest) (*entities.FaceRegistration, error) {
	if errs := validator.ValidatorInstance.ValidateStruct(payload); errs != nil {
		return nil, fmt.Errorf("invalid face registration payload: %v", *errs)
	}
	response, statusCode, err := c.Network.Post(ctx, "/face/register", c.headers(), payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	body, err := decode[entities.FaceRegistration](response, *statusCode, "face registration")
	if err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) TimeIn(ctx context.Context, employeeID string) (*entities.AttendanceRecord, error) {
	return c.clock(ctx, "/attendance/time-in", employeeID)
}

func (c *Client) TimeOut(ctx context.Context, employeeID string) (*entities.AttendanceRecord, error) {
	return c.clock(ctx, "/attendance/time-out", employeeID)
}

func (c *Client) clock(ctx context.Context, path string, employeeID string) (*entities.AttendanceRecord, error) {
	payload := clockRequest{EmployeeID: employeeID}
	if errs := validator.ValidatorInstance.ValidateStruct(payload); errs != nil {
		return nil, fmt.Errorf("invalid clock payload: %v", *errs)
	}
	response, statusCode, err := c.Network.Post(ctx, path, c.headers(), payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	body, err := decode[entities.AttendanceRecord](response, *statusCode, path)
	if err != nil {
		return nil, err
	}
	return body.Data, nil
}

// ListAttendance fetches the employee's records between from and to, inclusive.
func (c *Client) ListAttendance(ctx context.Context, employeeID string, from time.Time, to time.Time) ([]entities.AttendanceRecord, error) {
	if err := validator.ValidatorInstance.ValidateValue(employeeID, "required"); err != nil {
		return nil, err
	}
	response, statusCode, err := c.Network.Get(ctx, fmt.Sprintf("/attendance/%s", employeeID), c.headers(), &map[string]string{
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	body, err := decodeList[entities.AttendanceRecord](response, *statusCode, "attendance list")
	if err != nil {
		return nil, err
	}
	return body, nil
}

func decode[T any](response *[]byte, statusCode int, operation string) (*envelope[T], error) {
	if err := checkStatus(response, statusCode, operation); err != nil {
		return nil, err
	}
	var body envelope[T]
	if err := json.Unmarshal(*response, &body); err != nil {
		return nil, malformed(operation, err)
	}
	if errs := validator.ValidatorInstance.ValidateStruct(body); errs != nil {
		return nil, malformed(operation, fmt.Errorf("%v", *errs))
	}
	if body.Data == nil {
		return nil, malformed(operation, fmt.Errorf("data is missing"))
	}
	return &body, nil
}

func decodeList[T any](response *[]byte, statusCode int, operation string) ([]T, error) {
	body, err := decode[[]T](response, statusCode, operation)
	if err != nil {
		return nil, err
	}
	for i, item := range *body.Data {
		if errs := validator.ValidatorInstance.ValidateStruct(item); errs != nil {
			return nil, malformed(operation, fmt.Errorf("item %d: %v", i, *errs))
		}
	}
	return *body.Data, nil
}

func checkStatus(response *[]byte, statusCode int, operation string) error {
	if statusCode >= http.StatusInternalServerError {
		logger.Error("hr backend request failed", logger.LoggerOptions{
			Key:  "operation",
			Data: operation,
		}, logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		})
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, operation, statusCode)
	}
	if statusCode >= http.StatusBadRequest {
		var body struct {
			Message string `json:"message"`
		}
		if response != nil {
			json.Unmarshal(*response, &body)
		}
		if body.Message == "" {
			body.Message = http.StatusText(statusCode)
		}
		logger.Warning("hr backend rejected request", logger.LoggerOptions{
			Key:  "operation",
			Data: operation,
		}, logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		}, logger.LoggerOptions{
			Key:  "message",
			Data: body.Message,
		})
		return &APIError{StatusCode: statusCode, Message: body.Message}
	}
	return nil
}

func malformed(operation string, err error) error {
	logger.Error("hr backend returned a malformed response", logger.LoggerOptions{
		Key:  "operation",
		Data: operation,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, operation, err)
}
