package version

import (
	"runtime"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("Get() = %+v", info)
	}
	if info.Core != Core || info.FFmpeg != FFmpeg {
		t.Errorf("Get() ranges = %q, %q", info.Core, info.FFmpeg)
	}
	if String() != Version {
		t.Errorf("String() = %q, want %q", String(), Version)
	}
}

func TestCheckCore(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"15.0.0", true},
		{"16.12.1", true},
		{"v16.1.0", true},
		{"14.9.9", false},
		{"17.0.0", false},
	}

	for _, tt := range tests {
		got, err := CheckCore(tt.version)
		if err != nil {
			t.Errorf("CheckCore(%q) unexpected error: %v", tt.version, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CheckCore(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestCheckFFmpeg(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"5.0.1", true},
		{"5.1.2", true},
		{"n5.1.4", true},
		{"5.1.2-0+deb12u1", true},
		{"5.0.0", false},
		{"4.4.2", false},
		{"6.0", false},
	}

	for _, tt := range tests {
		got, err := CheckFFmpeg(tt.version)
		if err != nil {
			t.Errorf("CheckFFmpeg(%q) unexpected error: %v", tt.version, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CheckFFmpeg(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}

	if _, err := CheckFFmpeg("git-master"); err == nil {
		t.Error("CheckFFmpeg() should fail for a version without a release number")
	}
}
