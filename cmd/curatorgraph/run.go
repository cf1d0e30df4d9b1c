// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/supervisor/services"
)

// runCommand performs one analysis and writes the report to w.
func runCommand(ctx context.Context, cfg *config.Config, opts options, w io.Writer) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	svc := services.NewAnalysisService(a.pipeline, a.store, a.eventPublisher(), cfg.Scheduler, logging.Logger())
	report, err := svc.RunOnce(ctx)
	if err != nil {
		return err
	}

	var data []byte
	if opts.pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
