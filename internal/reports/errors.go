package reports

import (
	"fmt"

	"menu-analytics/internal/shared/svcerrors"
)

// ReportService errors
const (
	codeMissingRestaurantID = "RPT_1000"
	codeInvalidDate         = "RPT_1001"
	codeInvalidTimeRange    = "RPT_1002"
	codeInvalidWindow       = "RPT_1003"

	codeInternalQueryFailed = "RPT_9000"
)

func errMissingRestaurantID() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMissingRestaurantID, "restaurant_id is required", nil)
}

func errInvalidDate(value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidDate, fmt.Sprintf("invalid date: %q (expected YYYY-MM-DD)", value), cause)
}

func errInvalidTimeRange(value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidTimeRange, fmt.Sprintf("invalid time_range: %q", value), cause)
}

func errInvalidWindow(from, to string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidWindow, fmt.Sprintf("invalid range: to %s precedes from %s", to, from), nil)
}

// errInternalQueryFailed returns an error when a store read fails. No
// partial report is ever returned.
func errInternalQueryFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalQueryFailed, fmt.Errorf("reportQueryFailed: %w", cause))
}
