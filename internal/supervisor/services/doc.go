// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package services provides suture.Service wrappers for the serve command.

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the ListenAndServe pattern to Serve

Analysis Runner (AnalysisService):
  - Runs the pipeline on startup, on the scheduler interval and on demand
  - Stores every report and publishes a run-completed event
  - Implements api.RunTrigger; at most one on-demand run is queued at a time

Failed runs are logged and retried on the next trigger or tick so the
supervisor only restarts the service on a panic.
*/
package services
