// Package settings provides read access to the gateway's mutable
// settings store.
//
// The store is an external key/value source owned by the hosting
// gateway: it may be the gateway's options table (SQLite), a YAML file
// managed by an operator, or environment variables in test and CI
// environments. Values stored there are strings; typed parsing happens
// once at this package's boundary (see LoadExchange), never downstream.
//
// Sources must be treated as fresh on every read. The exchange rate can
// change between calls, so nothing in this package caches values beyond
// a single snapshot handed to the caller.
//
// # Usage
//
//	src, err := settings.NewSQLiteSource("data/options.db")
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//
//	ex, err := settings.LoadExchange(ctx, src)
//	if err != nil {
//		// conversion unavailable, render a fallback value
//	}
package settings
