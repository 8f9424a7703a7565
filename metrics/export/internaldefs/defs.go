package internaldefs

import (
	sessionkit "github.com/ledgerfront/sessionkit"
)

// CounterDef pairs a session counter with its stable exported name.
type CounterDef struct {
	ID   sessionkit.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter. Order is the render order of
// the Prometheus exposition.
var CounterDefs = []CounterDef{
	{ID: sessionkit.MetricLoginSuccess, Name: "sessionkit_login_success_total", Help: "Successful login flows."},
	{ID: sessionkit.MetricLoginFailure, Name: "sessionkit_login_failure_total", Help: "Failed login flows."},
	{ID: sessionkit.MetricRegisterSuccess, Name: "sessionkit_register_success_total", Help: "Successful registration flows."},
	{ID: sessionkit.MetricRegisterFailure, Name: "sessionkit_register_failure_total", Help: "Failed registration flows."},
	{ID: sessionkit.MetricRefreshSuccess, Name: "sessionkit_refresh_success_total", Help: "Refresh round trips that stored a new token pair."},
	{ID: sessionkit.MetricRefreshFailure, Name: "sessionkit_refresh_failure_total", Help: "Refresh round trips that cleared the session."},
	{ID: sessionkit.MetricRefreshCoalesced, Name: "sessionkit_refresh_coalesced_total", Help: "Callers that adopted an in-flight refresh instead of issuing their own."},
	{ID: sessionkit.MetricLogout, Name: "sessionkit_logout_total", Help: "Logout operations."},
	{ID: sessionkit.MetricDecodeFailure, Name: "sessionkit_decode_failure_total", Help: "Access tokens whose claims failed to decode."},
}

// EventsDroppedName is exported alongside the counters, sourced from the
// event dispatcher rather than the metric set.
const (
	EventsDroppedName = "sessionkit_events_dropped_total"
	EventsDroppedHelp = "Dropped session events due to dispatcher backpressure."
)
