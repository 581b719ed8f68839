// Package server provides the MCP server context, health endpoints,
// and the dedicated Prometheus metrics server for voxsched.
//
// ServerContext manages Google Calendar clients with lazy initialization
// and caching. It supports multiple accounts via token providers:
//   - ServiceAccountProvider: domain-wide delegation for headless deployments
//   - FileTokenProvider: cached per-account OAuth tokens on disk
//
// The context also carries the scheduling configuration and an injectable
// clock so relative date expressions ("tomorrow", "next tuesday") resolve
// deterministically in tests.
package server
