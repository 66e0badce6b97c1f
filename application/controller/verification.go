package controller

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/constants"
	"hrms.io/application/controller/dto"
	"hrms.io/application/interfaces"
	verification_usecases "hrms.io/application/usecases/verification"
	"hrms.io/application/utils"
	"hrms.io/infrastructure/database/repository/mongo"
	server_response "hrms.io/infrastructure/serverResponse"
	"hrms.io/infrastructure/validator"
)

func (c *Controller) StartVerification(ctx *interfaces.ApplicationContext[dto.StartVerificationDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}
	session := sessionFrom(ctx)
	if session == nil {
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired", ctx.DeviceID)
		return
	}

	run, err := c.Verification.Start(ctx.Context(), session, ctx.Body.Action, verification_usecases.ClientInfo{
		DeviceName: ctx.DeviceName,
		UserAgent:  ctx.UserAgent,
		IPAddress:  ctx.GetStringContextData("ClientIP"),
	})
	if err != nil {
		if errors.Is(err, verification_usecases.ErrInvalidAction) {
			apperrors.ClientError(ctx.Ctx, err.Error(), nil, nil, ctx.DeviceID)
			return
		}
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "verification started", dto.RunStartedResponse{
		RunID:  run.ID,
		Action: run.Action,
	}, nil, &constants.VERIFICATION_IN_PROGRESS, nil)
}

func (c *Controller) PushFrame(ctx *interfaces.ApplicationContext[dto.FrameDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}
	frame, err := ctx.Body.ToFrame()
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "frame pixels could not be decoded", []error{err}, nil, ctx.DeviceID)
		return
	}

	err = c.Verification.PushFrame(ctx.Param["runID"], ctx.GetStringContextData("SessionID"), frame)
	if err != nil {
		c.runError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted, "frame received", nil, nil, nil, nil)
}

func (c *Controller) ReportCameraError(ctx *interfaces.ApplicationContext[dto.CameraErrorDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}
	err := c.Verification.ReportCameraError(ctx.Param["runID"], ctx.GetStringContextData("SessionID"), ctx.Body.Reason)
	if err != nil {
		c.runError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted, "camera error received", nil, nil, nil, nil)
}

func (c *Controller) VerificationStatus(ctx *interfaces.ApplicationContext[any]) {
	view, err := c.Verification.Status(ctx.Param["runID"], ctx.GetStringContextData("SessionID"))
	if err != nil {
		c.runError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	if view.Result == nil {
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, view.Progress.Message, view, nil, &constants.VERIFICATION_IN_PROGRESS, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, view.Result.Message, view, nil, view.Result.ResponseCode, nil)
}

func (c *Controller) CancelVerification(ctx *interfaces.ApplicationContext[any]) {
	err := c.Verification.Cancel(ctx.Param["runID"], ctx.GetStringContextData("SessionID"))
	if err != nil {
		c.runError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "verification cancelled", nil, nil, nil, nil)
}

func (c *Controller) runError(ctx any, err error, deviceID string) {
	switch {
	case errors.Is(err, verification_usecases.ErrRunNotFound):
		apperrors.NotFoundError(ctx, err.Error(), &deviceID)
	case errors.Is(err, verification_usecases.ErrRunFinished):
		apperrors.EntityAlreadyExistsError(ctx, err.Error(), deviceID)
	default:
		apperrors.UnknownError(ctx, err, nil, deviceID)
	}
}

// ListVerificationLogs returns the audit trail, newest first. Admin only.
func (c *Controller) ListVerificationLogs(ctx *interfaces.ApplicationContext[any]) {
	page, limit := utils.ParsePagination(ctx.Query["page"], ctx.Query["limit"], constants.MAX_PAGE_LIMIT)
	filter := map[string]interface{}{}
	if userID := ctx.Query["userID"]; userID != "" {
		filter["userID"] = userID
	}
	if status := ctx.Query["status"]; status != "" {
		filter["status"] = status
	}

	var sort interface{} = bson.D{{Key: "createdAt", Value: -1}}
	skip := (page - 1) * limit
	logs, err := c.Logs.FindMany(ctx.Context(), filter, &mongo.FindOptions{
		Sort:  &sort,
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "mongodb", "500", err, ctx.DeviceID)
		return
	}
	total, err := c.Logs.CountDocs(ctx.Context(), filter)
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "mongodb", "500", err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "verification logs fetched", dto.VerificationLogsResponse{
		Logs:  logs,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil, nil, nil)
}
