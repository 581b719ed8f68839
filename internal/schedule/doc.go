// Package schedule implements the deterministic availability engine behind
// the scheduling tools.
//
// The package is pure computation: it never reads the clock, never performs
// I/O, and operates only on timezone-aware instants that callers have
// normalized into a single canonical location. It provides three things:
//
//   - Interval arithmetic over half-open [start, end) time ranges: merging
//     busy periods, computing free gaps within a search window, and checking
//     a specific candidate range for conflicts.
//   - Business-hours constraints that restrict free gaps to the open portion
//     of each calendar day.
//   - Normalization of loosely structured date/time fragments ("2025-03-07",
//     "tomorrow", "next friday") into concrete windows, relative to an
//     explicitly supplied reference time.
//
// Back-to-back intervals do not conflict: a busy period ending at 10:30 and
// a candidate starting at 10:30 can coexist. This half-open convention is
// applied consistently throughout.
package schedule
