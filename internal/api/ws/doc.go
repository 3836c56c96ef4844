// Package ws streams desktop state to browser clients over WebSocket.
//
// A connection receives a "windows" snapshot on connect and after every
// registry change, "theme" messages when the theme preference changes and,
// once it has sent {"type":"attach","app":name}, the cross-app
// notifications addressed to that app.
//
// Message Types (Client → Server):
//   - attach / detach: start or stop receiving notifications for an app
//   - ping: Keep-alive ping
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, bus, prefs, logger).WithMetrics(metrics)
//	router.GET("/stream", handler.HandleConnection)
package ws
