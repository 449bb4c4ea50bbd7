package errx

import (
	"net/http"

	"github.com/Chative-core-poc-v1/querychart/internal/chart"
)

// WrapChart maps chart engine errors onto AppError. Validation failures are
// the caller's fault (422); everything else is reported as an internal error.
func WrapChart(err error) error {
	if err == nil {
		return nil
	}
	if chart.IsValidation(err) {
		return New(err, http.StatusUnprocessableEntity, ChartInvalidMessage)
	}
	return New(err, http.StatusInternalServerError, ChartRenderMessage)
}

// WrapToolArguments marks a tool call whose arguments could not be decoded.
func WrapToolArguments(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadRequest, ToolArgumentsMessage)
}
