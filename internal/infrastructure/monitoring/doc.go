/*
Package monitoring provides metrics collection for the desktop backend.

# Overview

Metrics are Prometheus collectors registered on a private registry owned by
each Metrics value, tracking HTTP traffic, the window registry, key-value
storage operations, cross-app notifications and WebSocket clients.

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.SetWindowsOpen(3)
	metrics.IncWindowsOpened("notepad")

	timer := monitoring.NewTimer(metrics, "files", "put")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
