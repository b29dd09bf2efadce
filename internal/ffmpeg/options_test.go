package ffmpeg

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFlagsArgs(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  Args
	}{
		{
			name:  "empty set",
			flags: nil,
			want:  nil,
		},
		{
			name:  "single flag",
			flags: []string{"genpts"},
			want:  Args{"-fflags", "+genpts"},
		},
		{
			name:  "multiple flags keep order",
			flags: []string{"nobuffer", "genpts", "igndts"},
			want:  Args{"-fflags", "+nobuffer+genpts+igndts"},
		},
		{
			name:  "unknown flag passes through",
			flags: []string{"custom"},
			want:  Args{"-fflags", "+custom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFlagsArgs(tt.flags)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FormatFlagsArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestThreadQueueArgs(t *testing.T) {
	got := ThreadQueueArgs(DefaultThreadQueueSize).String()
	want := "-thread_queue_size 512"
	if got != want {
		t.Errorf("ThreadQueueArgs() = %q, want %q", got, want)
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		wantErr bool
	}{
		{"no flags", nil, false},
		{"defaults", GetDefaultFlags(), false},
		{"compatible flags", []string{"genpts", "nobuffer"}, false},
		{"conflicting dts handling", []string{"igndts", "sortdts"}, true},
		{"unknown flags ignored", []string{"whatever"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFlags(tt.flags)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDefaultFlags(t *testing.T) {
	got := GetDefaultFlags()
	if diff := cmp.Diff([]string{"genpts"}, got); diff != "" {
		t.Errorf("GetDefaultFlags() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetOptionByKey(t *testing.T) {
	for _, option := range AllOptions {
		got := GetOptionByKey(option.Key)
		if got == nil {
			t.Fatalf("GetOptionByKey(%q) returned nil", option.Key)
		}
		if got.Name == "" || got.Description == "" {
			t.Errorf("option %q is missing name or description", option.Key)
		}
	}

	if GetOptionByKey("missing") != nil {
		t.Error("GetOptionByKey(missing) should return nil")
	}
}

func TestGOPFrames(t *testing.T) {
	tests := []struct {
		fps, gop string
		want     string
	}{
		{"25", "2", "50"},
		{"30", "1", "30"},
		{"29.97", "2", "60"},
		{"25", "0.5", "13"},
		{"0", "2", "0"},
		{"abc", "2", "0"},
	}

	for _, tt := range tests {
		got := GOPFrames(tt.fps, tt.gop)
		if got != tt.want {
			t.Errorf("GOPFrames(%q, %q) = %q, want %q", tt.fps, tt.gop, got, tt.want)
		}
	}
}

func TestKbps(t *testing.T) {
	if got := Kbps("64"); got != "64k" {
		t.Errorf("Kbps() = %q, want %q", got, "64k")
	}
}

func TestArgsWithDoesNotAlias(t *testing.T) {
	base := make(Args, 0, 8)
	base = append(base, "-a", "1")

	first := base.With("-b", "2")
	second := base.With("-c", "3")

	if first.String() != "-a 1 -b 2" {
		t.Errorf("first = %q", first.String())
	}
	if second.String() != "-a 1 -c 3" {
		t.Errorf("second = %q", second.String())
	}
}

func TestArgsString(t *testing.T) {
	args := Args{"-user_agent", "Mozilla/5.0 (X11)", "-i", ""}
	got := args.String()
	if !strings.Contains(got, `"Mozilla/5.0 (X11)"`) {
		t.Errorf("String() = %q, expected quoted user agent", got)
	}
	if !strings.HasSuffix(got, `""`) {
		t.Errorf("String() = %q, expected quoted empty token", got)
	}
}
