// Package database wraps the SQLite connection used for the attribute
// write audit log.
//
// The daemon writes a single small table so the setup is deliberately
// conservative: one writer connection, WAL journaling for concurrent
// readers and embedded schema migrations applied at startup. Migration
// files are compiled into the binary via the migrations package; the
// daemon never needs SQL files on disk.
package database
