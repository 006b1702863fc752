package caps

import (
	"errors"
	"testing"
)

func TestParseRCMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RCMode
		wantErr bool
	}{
		{"CQP", RCCQP, false},
		{"cbr|mb", RCCBR | RCMB, false},
		{"VBR | PARALLEL", RCVBR | RCParallel, false},
		{"fast", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRCMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRCMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRCMode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	if s := (RCCBR | RCParallel).String(); s != "CBR|PARALLEL" {
		t.Errorf("String() = %q, want CBR|PARALLEL", s)
	}
}

func TestPackROI(t *testing.T) {
	v := PackROI(8, true, true)
	if v != 0x308 {
		t.Fatalf("PackROI(8, true, true) = 0x%x, want 0x308", v)
	}
	count, priority, delta := UnpackROI(v)
	if count != 8 || !priority || !delta {
		t.Errorf("UnpackROI(0x%x) = %d, %v, %v", v, count, priority, delta)
	}
	if v := PackROI(4, false, true); v != 0x104 {
		t.Errorf("PackROI(4, false, true) = 0x%x, want 0x104", v)
	}
}

func TestParseEnums(t *testing.T) {
	if p, err := ParseProfile("hevcmain10"); err != nil || p != ProfileHEVCMain10 {
		t.Errorf("ParseProfile(hevcmain10) = %s, %v", p, err)
	}
	if _, err := ParseProfile("av1main"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ParseProfile(av1main) error = %v, want invalid parameter", err)
	}

	entrypoints := map[string]Entrypoint{
		"decode":     EntrypointVLD,
		"encode":     EntrypointEncSlice,
		"lp":         EntrypointEncSliceLP,
		"EncPicture": EntrypointEncPicture,
		"videoproc":  EntrypointVideoProc,
	}
	for in, want := range entrypoints {
		if got, err := ParseEntrypoint(in); err != nil || got != want {
			t.Errorf("ParseEntrypoint(%q) = %s, %v, want %s", in, got, err, want)
		}
	}

	if a, err := ParseAttribType("encmaxrefframes"); err != nil || a != AttribEncMaxRefFrames {
		t.Errorf("ParseAttribType = %s, %v", a, err)
	}
	if m, err := ParseCodecMode("VC1"); err != nil || m != DecodeModeVC1VLD {
		t.Errorf("ParseCodecMode(VC1) = %s, %v", m, err)
	}
}

func TestProfileClassification(t *testing.T) {
	tests := []struct {
		profile Profile
		family  CodecFamily
		mode    CodecMode
		tenBit  bool
	}{
		{ProfileH264ConstrainedBaseline, FamilyAVC, DecodeModeAVCVLD, false},
		{ProfileHEVCMain10, FamilyHEVC, DecodeModeHEVCVLD, true},
		{ProfileVP9Profile2, FamilyVP9, DecodeModeVP9VLD, true},
		{ProfileVC1Advanced, FamilyVC1, DecodeModeVC1VLD, false},
		{ProfileNone, FamilyNone, DecodeModeNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			if got := tt.profile.Family(); got != tt.family {
				t.Errorf("Family() = %s, want %s", got, tt.family)
			}
			if got := tt.profile.DecodeMode(); got != tt.mode {
				t.Errorf("DecodeMode() = %s, want %s", got, tt.mode)
			}
			if got := tt.profile.Is10Bit(); got != tt.tenBit {
				t.Errorf("Is10Bit() = %v, want %v", got, tt.tenBit)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewError(StatusResolutionNotSupported, "op", "too big"))
	if got := StatusOf(wrapped); got != StatusResolutionNotSupported {
		t.Errorf("StatusOf(wrapped) = %s", got)
	}
	if got := StatusOf(nil); got != StatusSuccess {
		t.Errorf("StatusOf(nil) = %s", got)
	}
	if got := StatusOf(ErrFrozen); got != StatusOperationFailed {
		t.Errorf("StatusOf(ErrFrozen) = %s", got)
	}
	if !errors.Is(NewError(StatusUnsupportedAttribute, "op", "x"), ErrUnsupportedAttribute) {
		t.Error("status errors should match their sentinel")
	}
	if errors.Is(NewError(StatusUnsupportedAttribute, "op", "x"), ErrInvalidParameter) {
		t.Error("status errors should not match other sentinels")
	}
}
