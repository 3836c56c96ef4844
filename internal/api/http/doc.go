// Package http exposes the window registry, the virtual path store,
// preferences and cross-app notifications over a JSON HTTP API.
//
// Registry commands never fail at the HTTP level for unknown targets; they
// answer 200 with "success": false. Path store errors map to status codes:
// invalid paths to 400, missing entries to 404 and backend failures to 502.
package http
