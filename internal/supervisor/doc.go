// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package supervisor runs the server's long-lived services under suture v4.

	RootSupervisor ("rozgar")
	├── DataSupervisor ("data-layer")
	│   └── RefreshService (yearly re-ingestion)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with exponential backoff once FailureThreshold is
exceeded; failures decay at FailureDecay per second. Supervisor events are
logged through sutureslog into the zerolog-backed slog.Logger from
logging.NewSlogLogger.

Usage in main:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewRefreshService(scheduler))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)

Cancel ctx to stop; UnstoppedServiceReport names anything that missed the
shutdown timeout.
*/
package supervisor
