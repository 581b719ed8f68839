// Package scheduling_tools exposes the availability engine and event
// writer as MCP tools for the voice orchestration layer:
//
//   - scheduler_current_time: reference date/time in the canonical timezone
//   - scheduler_find_available_slots: free slots in a window
//   - scheduler_check_availability: point query for a candidate interval
//   - scheduler_list_events: events overlapping a window
//   - scheduler_create_event: write a confirmed slot (requires write mode)
//
// Handlers convert loose request arguments into typed schedule and
// calendar values at this boundary; the engine never sees untyped maps.
// Results are short spoken-style sentences so the voice layer can read
// them back verbatim.
package scheduling_tools
