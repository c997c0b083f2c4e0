package profile

import (
	"fmt"
	"log/slog"
)

// FirmwareReader supplies the EC firmware version string. Satisfied by
// ec.Controller; a fake is enough for tests.
type FirmwareReader interface {
	FirmwareVersion() (string, error)
}

// Resolver selects the active hardware profile for this machine. It is
// built once at startup and queried once; the resulting profile is
// immutable for the process lifetime.
type Resolver struct {
	catalog  []*Profile
	override string
	debug    bool
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFirmwareOverride bypasses the hardware firmware read and resolves
// against the given version string instead. Intended for testing and
// for forcing a profile onto an unlisted firmware revision.
func WithFirmwareOverride(fw string) ResolverOption {
	return func(r *Resolver) {
		r.override = fw
	}
}

// WithDebug allows resolution to succeed with no matching profile. The
// returned configuration carries no features; only the raw debug
// register operations remain usable.
func WithDebug(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.debug = enabled
	}
}

// WithCatalog replaces the built-in catalog. Used by tests.
func WithCatalog(catalog []*Profile) ResolverOption {
	return func(r *Resolver) {
		r.catalog = catalog
	}
}

// NewResolver creates a resolver over the built-in catalog.
func NewResolver(logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		catalog: Catalog,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve determines the firmware version and selects the first catalog
// profile whose allow-list contains it.
//
// A failed firmware read is fatal and reported as ErrNoConfiguration;
// it is distinct from a successful read that matches nothing, which is
// ErrUnsupportedFirmware unless debug mode is on. In debug mode an
// unmatched firmware yields an empty profile so the daemon can still
// start for register exploration.
//
// Returns:
//   - the resolved profile (a copy, safe to hold), the firmware string
//     it was resolved from, and nil on success
//   - ErrNoConfiguration if the firmware version cannot be read
//   - ErrUnsupportedFirmware if no profile matches and debug is off
func (r *Resolver) Resolve(fwReader FirmwareReader) (*Profile, string, error) {
	fw := r.override
	if fw == "" {
		read, err := fwReader.FirmwareVersion()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrNoConfiguration, err)
		}
		fw = read
	} else {
		r.logger.Warn("using firmware override", "firmware", fw)
	}

	for _, p := range r.catalog {
		if p.Matches(fw) {
			r.logger.Info("resolved hardware profile",
				"firmware", fw,
				"model", p.Name)
			return p.clone(), fw, nil
		}
	}

	if r.debug {
		r.logger.Warn("no profile for firmware, continuing in debug mode",
			"firmware", fw)
		return &Profile{Name: "debug", Firmware: []string{fw}}, fw, nil
	}

	return nil, fw, fmt.Errorf("%w: %q", ErrUnsupportedFirmware, fw)
}
