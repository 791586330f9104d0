package ingestors

import (
	"fmt"

	"menu-analytics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeSessionValidationFailed = "SES_1000"
	codeEventValidationFailed   = "EVT_1000"

	codeInternalSessionStoreFailed = "SES_9000"
	codeInternalEventStoreFailed   = "EVT_9000"
)

// errSessionValidationFailed returns an error for session payload validation failures.
func errSessionValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeSessionValidationFailed, msg, cause)
}

// errEventValidationFailed returns an error for event payload validation failures.
func errEventValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeEventValidationFailed, msg, cause)
}

// errInternalSessionStoreFailed returns an error when a session write fails.
func errInternalSessionStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSessionStoreFailed, fmt.Errorf("sessionStoreFailed: %w", cause))
}

// errInternalEventStoreFailed returns an error when an event append fails.
func errInternalEventStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventStoreFailed, fmt.Errorf("eventStoreFailed: %w", cause))
}
