// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It is used for
// the `validate` tags on configuration sections and on API query parameters.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - APIError conversion matching the API error envelope
//   - Custom tags: duration_nonneg for time.Duration fields, unit_interval
//     for trust scores and thresholds, nats_url for broker addresses
//
// # Quick Start
//
//	type CuratorQuery struct {
//	    Limit    int     `validate:"gte=1,lte=200"`
//	    MinTrust float64 `validate:"unit_interval"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	    return
//	}
//
// # Error Format
//
// A single failing field produces its message directly ("Limit must be less
// than or equal to 200"). Multiple failures are joined with "; " and each field
// is listed under Details["fields"].
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
