// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package supervisor provides process supervision for the serve command using suture v4.

The tree separates the analysis runner from the HTTP API:

	RootSupervisor ("curatorgraph")
	├── AnalysisSupervisor ("analysis-layer")
	│   └── AnalysisService (scheduled and on-demand runs)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A run that panics or fails repeatedly is restarted with backoff while the API
keeps serving the last stored report. Supervisor events are logged through
sutureslog, which writes to the zerolog-backed slog handler of the logging
package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAnalysisService(analysisSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor
