// Package attr turns the active hardware profile into named read/write
// attributes backed by EC registers.
//
// Each attribute pairs a generic codec with one feature descriptor from
// the profile: on/off switches map to single bits or masks, mode
// selectors to value tables, fan speeds to linear percentage ranges and
// charge thresholds to offset bytes. The registry builds the attribute
// set once at startup and gates it on the profile's addresses, so a
// feature whose address is marked unsupported never appears at all.
// Features with unknown addresses are kept visible and operable, which
// is how new register layouts get probed in the field.
package attr
