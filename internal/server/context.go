package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"voxsched/internal/calendar"
	"voxsched/internal/config"
	"voxsched/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	cfg             *config.Config
	calendarClients map[string]*calendar.Client // Maps account name to Calendar client
	now             func() time.Time
	writesEnabled   bool
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, cfg *config.Config) (*ServerContext, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate configuration: %w", err)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	// Initialize client map. Clients are lazily created on first use so a
	// missing credential does not prevent startup.
	calendarClients := make(map[string]*calendar.Client)

	if calendar.HasTokenForAccount("default") {
		client, err := calendar.NewClientForAccount(shutdownCtx, "default")
		if err != nil {
			// Log but don't fail - will be re-attempted on first use
			fmt.Printf("Warning: failed to create Calendar client for default account: %v\n", err)
		} else {
			calendarClients["default"] = client
		}
	}

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		cfg:             cfg,
		calendarClients: calendarClients,
		now:             time.Now,
		shutdown:        false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the scheduling configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Now returns the current time in the configured timezone.
func (sc *ServerContext) Now() time.Time {
	sc.mu.RLock()
	clock := sc.now
	sc.mu.RUnlock()

	loc, err := sc.cfg.Location()
	if err != nil {
		return clock()
	}
	return clock().In(loc)
}

// SetClock replaces the time source. Used by tests to pin "today".
func (sc *ServerContext) SetClock(clock func() time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.now = clock
}

// SetWritesEnabled controls whether event-creating tools are available.
func (sc *ServerContext) SetWritesEnabled(enabled bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.writesEnabled = enabled
}

// WritesEnabled returns whether event-creating tools are available.
func (sc *ServerContext) WritesEnabled() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.writesEnabled
}

// SetInstrumentation wires the metrics recorder and audit logger into the
// context so tool handlers can reach them.
func (sc *ServerContext) SetInstrumentation(metrics *instrumentation.Metrics, auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
	sc.auditLogger = auditLogger
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil when instrumentation is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// CalendarClientForAccount returns the Calendar client for a specific account
// Creates and caches the client if it doesn't exist yet
// Returns nil if the account has no credentials
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	// Try to create client if credentials exist
	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		fmt.Printf("Warning: failed to create Calendar client for account %s: %v\n", account, err)
		return nil
	}

	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the Calendar client for the default account
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// SetCalendarClient sets the Calendar client for the default account
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.SetCalendarClientForAccount("default", client)
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
