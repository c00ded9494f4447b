// Package audit persists pricing computations for later inspection.
//
// Every recorded entry captures the full line-item detail of a cost
// breakdown or tier table as computed, so the billing-log screen can
// show exactly what the operator saw at quote time even after ratios
// change. Records are identified by UUID and stored in SQLite.
//
// Retention is enforced by a Pruner (age- and count-based) which can
// run once or on a cron schedule.
package audit
