package http

import (
	"fmt"

	"menu-analytics/internal/shared/svcerrors"
)

const (
	codeUnauthorized      = "AUTH_1000"
	codeInvalidQueryParam = "HTTP_1000"
)

func errUnauthorized(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnauthorizedError(codeUnauthorized, "missing or invalid bearer token", cause)
}

func errInvalidQueryParam(name, value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam, fmt.Sprintf("invalid query parameter %s: %q", name, value), cause)
}
