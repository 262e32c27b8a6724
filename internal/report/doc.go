// Package report computes the statistics behind the tracker's dashboards
// and exports: grouping counts, per-user performance, time-bucketed trends,
// recurring device issue detection, and CSV serialization.
//
// Every function is a pure computation over record slices with an explicit
// reference time, so reports are reproducible and trivially testable. No
// state is shared between invocations; results are recomputed per request
// and never persisted.
package report
