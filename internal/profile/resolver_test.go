package profile

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakeFirmware struct {
	version string
	err     error
}

func (f *fakeFirmware) FirmwareVersion() (string, error) {
	return f.version, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() []*Profile {
	return []*Profile{
		{
			Name:     "model-a",
			Firmware: []string{"AAAA1.100", "AAAA1.101"},
			ShiftMode: ModeTable{
				Address: Addr(0xf2),
				Modes:   []Mode{{ShiftEco, 0xc2}},
			},
		},
		{
			Name:     "model-b",
			Firmware: []string{"BBBB1.100"},
		},
	}
}

func TestResolveSelectsMatchingProfile(t *testing.T) {
	r := NewResolver(discardLogger(), WithCatalog(testCatalog()))

	p, fw, err := r.Resolve(&fakeFirmware{version: "AAAA1.101"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if fw != "AAAA1.101" {
		t.Errorf("firmware = %q, want %q", fw, "AAAA1.101")
	}
	if p.Name != "model-a" {
		t.Errorf("resolved %q, want model-a", p.Name)
	}
}

func TestResolveReturnsACopy(t *testing.T) {
	catalog := testCatalog()
	r := NewResolver(discardLogger(), WithCatalog(catalog))

	p, _, err := r.Resolve(&fakeFirmware{version: "AAAA1.100"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	p.ShiftMode.Modes[0].Name = "mutated"
	p.Firmware[0] = "mutated"

	if catalog[0].ShiftMode.Modes[0].Name != ShiftEco {
		t.Error("mutating the resolved profile changed the catalog mode table")
	}
	if catalog[0].Firmware[0] != "AAAA1.100" {
		t.Error("mutating the resolved profile changed the catalog firmware list")
	}
}

func TestResolveUnsupportedFirmware(t *testing.T) {
	r := NewResolver(discardLogger(), WithCatalog(testCatalog()))

	_, fw, err := r.Resolve(&fakeFirmware{version: "ZZZZ1.999"})
	if !errors.Is(err, ErrUnsupportedFirmware) {
		t.Fatalf("error = %v, want ErrUnsupportedFirmware", err)
	}
	if fw != "ZZZZ1.999" {
		t.Errorf("firmware = %q, want the unmatched version", fw)
	}
}

func TestResolveDebugModeYieldsEmptyProfile(t *testing.T) {
	r := NewResolver(discardLogger(), WithCatalog(testCatalog()), WithDebug(true))

	p, _, err := r.Resolve(&fakeFirmware{version: "ZZZZ1.999"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.ChargeControl.Address.Supported() {
		t.Error("debug profile should expose no features")
	}
	if p.ShiftMode.Address.Supported() {
		t.Error("debug profile should expose no features")
	}
}

func TestResolveFirmwareReadFailureIsFatal(t *testing.T) {
	r := NewResolver(discardLogger(), WithCatalog(testCatalog()), WithDebug(true))

	_, _, err := r.Resolve(&fakeFirmware{err: errors.New("io failure")})
	if !errors.Is(err, ErrNoConfiguration) {
		t.Fatalf("error = %v, want ErrNoConfiguration", err)
	}
}

func TestResolveOverrideSkipsHardwareRead(t *testing.T) {
	r := NewResolver(discardLogger(),
		WithCatalog(testCatalog()),
		WithFirmwareOverride("BBBB1.100"))

	// The reader would fail if consulted.
	p, fw, err := r.Resolve(&fakeFirmware{err: errors.New("io failure")})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if fw != "BBBB1.100" || p.Name != "model-b" {
		t.Errorf("resolved (%q, %q), want model-b via override", p.Name, fw)
	}
}
