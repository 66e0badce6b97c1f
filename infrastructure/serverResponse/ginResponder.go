package server_response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
)

type ginResponder struct{}

// Respond writes {message, body, errors, response_code} and aborts the chain.
func (gr ginResponder) Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, response_code *uint, device_id *string) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return
	}
	ginCtx.Abort()
	response := map[string]any{
		"message": message,
		"body":    payload,
	}
	if response_code != nil {
		response["response_code"] = *response_code
	}
	if errs != nil {
		errMsgs := []string{}
		for _, err := range errs {
			errMsgs = append(errMsgs, err.Error())
		}
		response["errors"] = errMsgs
	}
	if env.String("ENV", "development") != "prod" && code >= http.StatusBadRequest {
		options := []logger.LoggerOptions{{Key: "message", Data: message}, {Key: "errors", Data: errs}}
		if device_id != nil {
			options = append(options, logger.LoggerOptions{Key: "deviceID", Data: *device_id})
		}
		logger.Info("error response", options...)
	}
	ginCtx.JSON(code, response)
}
