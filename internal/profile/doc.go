// Package profile describes per-model EC register layouts and resolves
// the layout for the running firmware.
//
// Register layouts differ between laptop models and are undocumented;
// each supported model is described by a Profile: a declarative record
// of register addresses, bit positions, mode tables and numeric ranges
// for every logical feature. Profiles carry no behaviour; the generic
// attribute codec interprets them, so supporting a new model is a pure
// data addition to the catalog.
//
// Addresses are a three-state sum type: a real register address, Unknown
// (the model is believed to support the feature but the address has not
// been confirmed), or Unsupported (the feature is not wired on this
// model). Unsupported features are hidden entirely; Unknown features
// stay operable so the hardware-support community can probe them.
//
// Resolution matches the EC firmware version string against each
// profile's firmware list in catalog order, first match wins. The
// catalog must not contain overlapping firmware lists; this is asserted
// by a test, not at runtime.
package profile
