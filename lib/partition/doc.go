// Package partition reconciles the time-range partitions of a single
// PostgreSQL table against a retention/buffer policy.
//
// Partitions are named <parent>_<suffix> where the suffix is yyyyMMdd for
// daily ranges and yyyyMM for monthly ranges. Given a reference date the
// engine derives the window of partitions that should exist, diffs it
// against what the Repository reports, and asks the Repository to detach
// or drop what fell out of the window before creating what is missing.
package partition
