// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package refresh re-ingests configured financial years on a cron schedule.

The upstream dataset is republished as the year progresses, so rows read on
a cache miss go stale. The Scheduler sleeps until the next fire time of a
5-field cron expression (default "0 3 1 1 *", evaluated in Asia/Kolkata) and
then syncs each configured year in turn with trigger "schedule". A failing
year is logged and does not stop the remaining years.

The Scheduler follows the Start/Stop lifecycle and runs under the data layer
of the supervisor tree through services.RefreshService.
*/
package refresh
