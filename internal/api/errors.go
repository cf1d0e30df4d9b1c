// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package api

import "errors"

// Error codes returned in APIError.Code
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeNoData         = "NO_DATA"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeRunInProgress  = "RUN_IN_PROGRESS"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
	CodeInternal       = "INTERNAL_ERROR"
	CodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	CodeMethodNotAllow = "METHOD_NOT_ALLOWED"
)

// Common API errors
var (
	// ErrRunsDisabled indicates the server was started without a run trigger
	ErrRunsDisabled = errors.New("on-demand analysis runs are not enabled")

	// ErrInvalidUserID indicates a user id path parameter that is not a positive integer
	ErrInvalidUserID = errors.New("user id must be a positive integer")
)
