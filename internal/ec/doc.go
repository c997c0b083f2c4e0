// Package ec implements the register access layer for the laptop's
// embedded controller.
//
// The EC exposes a flat, 8-bit-addressed register file with single-byte
// reads and writes and no native atomic bit operations. Every bit or
// mask mutation is therefore a read-modify-write pair, and several
// logical features share a single register byte. The Controller
// serialises each mutation kind behind its own mutex so that two
// concurrent writers touching different bits of the same byte can never
// lose each other's update.
//
// Lock granularity is one mutex per operation kind (bit set, mask set,
// mask unset), matching the hardware driver this layer models: a single
// lock over the whole register file would serialise unrelated
// operations, while per-address locks buy nothing for a register file
// this small.
//
// The physical byte transport is abstracted behind the Transport
// interface; production use reads the ec_sys debugfs io file, tests use
// an in-memory register file.
package ec
