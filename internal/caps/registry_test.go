package caps

import (
	"errors"
	"slices"
	"testing"

	"github.com/smazurov/mediacaps/internal/sku"
)

func TestRegistryFirstRegistrationWins(t *testing.T) {
	r := NewRegistry(nil)

	var created []string
	factory := func(name string) Factory {
		return func(ctx *Context) (Caps, error) {
			created = append(created, name)
			return GenerationFactory(Gen10())(ctx)
		}
	}

	if err := r.Register(sku.PlatformCannonlake, factory("first")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(sku.PlatformCannonlake, factory("second")); !errors.Is(err, ErrDuplicateGeneration) {
		t.Fatalf("duplicate Register error = %v, want ErrDuplicateGeneration", err)
	}

	table := defaultTable(t, sku.PlatformCannonlake)
	if _, err := r.Create(&Context{Platform: sku.PlatformCannonlake, Features: table}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !slices.Equal(created, []string{"first"}) {
		t.Errorf("factories called = %v, want [first]", created)
	}
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry(nil)
	if err := RegisterBuiltins(r); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	want := []sku.Platform{sku.PlatformSkylake, sku.PlatformKabylake, sku.PlatformCannonlake, sku.PlatformIcelake}
	if got := r.Platforms(); !slices.Equal(got, want) {
		t.Errorf("Platforms() = %v, want %v", got, want)
	}

	tests := []struct {
		platform sku.Platform
		wantGen  string
	}{
		{sku.PlatformSkylake, "gen9"},
		{sku.PlatformKabylake, "gen9"},
		{sku.PlatformCannonlake, "gen10"},
		{sku.PlatformIcelake, "gen11"},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			c, err := r.Create(&Context{Platform: tt.platform, Features: defaultTable(t, tt.platform)})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if c.Generation() != tt.wantGen {
				t.Errorf("generation = %s, want %s", c.Generation(), tt.wantGen)
			}
			if c.Platform() != tt.platform {
				t.Errorf("platform = %s, want %s", c.Platform(), tt.platform)
			}
			if err := c.Init(); err != nil {
				t.Errorf("Init failed: %v", err)
			}
		})
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry(nil)

	if _, err := r.Create(&Context{Platform: sku.PlatformIcelake}); !errors.Is(err, ErrUnknownGeneration) {
		t.Errorf("Create on empty registry error = %v, want ErrUnknownGeneration", err)
	}
	if _, err := r.Create(nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Create(nil) error = %v, want invalid parameter", err)
	}
	if err := r.Register(sku.PlatformUnknown, GenerationFactory(Gen10())); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Register(unknown) error = %v, want invalid parameter", err)
	}
	if err := r.Register(sku.PlatformCannonlake, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Register(nil factory) error = %v, want invalid parameter", err)
	}

	if err := RegisterBuiltins(r); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}
	if err := RegisterBuiltins(r); !errors.Is(err, ErrDuplicateGeneration) {
		t.Errorf("second RegisterBuiltins error = %v, want ErrDuplicateGeneration", err)
	}

	if _, err := r.Create(&Context{Platform: sku.PlatformIcelake}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Create without feature table error = %v, want invalid parameter", err)
	}
}

func TestSessionsShareNoState(t *testing.T) {
	r := NewRegistry(nil)
	if err := RegisterBuiltins(r); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	full := defaultTable(t, sku.PlatformCannonlake)
	reduced := full.Without(sku.FtrEncodeAVC)

	a, err := r.Create(&Context{Platform: sku.PlatformCannonlake, Features: full})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := r.Create(&Context{Platform: sku.PlatformCannonlake, Features: reduced})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := a.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, ok := a.Entry(ProfileH264Main, EntrypointEncSlice); !ok {
		t.Error("full session lost AVC encode")
	}
	if _, ok := b.Entry(ProfileH264Main, EntrypointEncSlice); ok {
		t.Error("reduced session registered AVC encode")
	}
}

func TestSessionsShareNoLimits(t *testing.T) {
	r := NewRegistry(nil)
	if err := RegisterBuiltins(r); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	open := func() Caps {
		c, err := r.Create(&Context{Platform: sku.PlatformCannonlake, Features: defaultTable(t, sku.PlatformCannonlake)})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := c.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		return c
	}
	a, b := open(), open()

	limits := a.Limits()
	if limits.DecodeMax == nil {
		t.Fatal("limits carry no decode maxima")
	}
	limits.DecodeMax[DecodeModeHEVCVLD] = Size{Width: 16, Height: 16}
	limits.DecodeDefault = Size{Width: 16, Height: 16}

	for name, c := range map[string]Caps{"a": a, "b": b} {
		if err := c.CheckDecodeResolution(DecodeModeHEVCVLD, ProfileHEVCMain, 1920, 1080); err != nil {
			t.Errorf("session %s: 1920x1080 HEVC decode rejected after editing a limits copy: %v", name, err)
		}
		if got := c.Limits().DecodeMaxFor(DecodeModeHEVCVLD); got.Width == 16 {
			t.Errorf("session %s: decode maximum changed to %v", name, got)
		}
	}
}
