// Package http implements the HTTP handlers of the dashboard API. It is a
// thin layer between transport and business logic: handlers parse and
// validate query parameters, delegate to the service layer, and render
// JSON envelopes or RFC 7807 problem responses.
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Snapshot
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Successful responses use the envelope {"status": "success", "data": ...};
// failures render application/problem+json through internal/errors.
package http
