// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package services adapts long-running components to suture.Service.

	HTTPServerService  *http.Server (ListenAndServe/Shutdown)    api layer
	RefreshService     *refresh.Scheduler (Start/Stop)           data layer

Each wrapper returns ctx.Err() on a requested shutdown and a wrapped error
on failure, so suture can tell a clean stop from a crash and restart only
the latter.
*/
package services
