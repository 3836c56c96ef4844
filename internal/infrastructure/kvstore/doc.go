/*
Package kvstore provides the durable flat key-value storage that backs the
virtual disk and user preferences.

A Driver owns the connection (or directory) and hands out one Backend per
named collection. Backends store opaque byte values under string keys and
expose enough for the layers above: put, get, delete, key enumeration and
destroying the whole collection.

# Drivers

  - memory: in-process maps, for tests and throwaway runs
  - disk: one zstd-compressed JSON snapshot per collection, replaced
    atomically on every mutation
  - postgres: a single webdesk_kv table keyed by (collection, key)
  - etcd: keys laid out as <prefix>/<collection>/<key>

Open selects a driver from configuration. Instrument wraps any driver with
Prometheus counters and latency histograms.

# Usage

	driver, err := kvstore.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer driver.Close()

	files, err := driver.Open(ctx, kvstore.CollectionFiles)
*/
package kvstore
