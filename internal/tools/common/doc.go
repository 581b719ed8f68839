// Package common provides shared helpers for MCP tool handlers:
// account resolution from request arguments and instrumentation
// wrappers that record metrics, traces, and audit logs per invocation.
package common
