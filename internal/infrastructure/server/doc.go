// Package server wires configuration, storage, the desktop domain and the
// HTTP and WebSocket surfaces into a runnable server.
//
// Example Usage:
//
//	srv, err := server.NewServer(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	go srv.Run()
//	defer srv.Close(context.Background())
package server
