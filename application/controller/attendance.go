package controller

import (
	"errors"
	"net/http"
	"time"

	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/constants"
	"hrms.io/application/controller/dto"
	"hrms.io/application/interfaces"
	"hrms.io/application/timesheet"
	"hrms.io/application/utils"
	"hrms.io/infrastructure/hrbackend"
	server_response "hrms.io/infrastructure/serverResponse"
)

// AttendanceSummary totals the signed-in employee's shifts between from and
// to, defaulting to the current month.
func (c *Controller) AttendanceSummary(ctx *interfaces.ApplicationContext[any]) {
	session := sessionFrom(ctx)
	if session == nil {
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired", ctx.DeviceID)
		return
	}
	now := c.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from, err := utils.ParseDate(ctx.Query["from"], monthStart)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "from must be a date in the format YYYY-MM-DD", []error{err}, nil, ctx.DeviceID)
		return
	}
	to, err := utils.ParseDate(ctx.Query["to"], now)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "to must be a date in the format YYYY-MM-DD", []error{err}, nil, ctx.DeviceID)
		return
	}
	if to.Before(from) {
		apperrors.ClientError(ctx.Ctx, "to cannot be before from", nil, nil, ctx.DeviceID)
		return
	}

	records, err := c.Attendance.ListAttendance(ctx.Context(), session.EmployeeID, from, to)
	if err != nil {
		var apiErr *hrbackend.APIError
		if errors.As(err, &apiErr) {
			apperrors.ClientError(ctx.Ctx, apiErr.Message, nil, nil, ctx.DeviceID)
			return
		}
		apperrors.ExternalDependencyError(ctx.Ctx, "hr backend", "503", err, ctx.DeviceID)
		return
	}
	summary, err := timesheet.Summarize(records, constants.STANDARD_SHIFT)
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "hr backend", "200", err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance summary fetched", dto.AttendanceSummaryResponse{
		From:    from.Format("2006-01-02"),
		To:      to.Format("2006-01-02"),
		Summary: summary,
	}, nil, nil, nil)
}
