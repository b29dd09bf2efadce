package coders

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smazurov/relaycoder/internal/types"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw    string
		accept []Kind
		kind   Kind
		str    string
	}{
		{"auto", []Kind{KindAuto}, KindAuto, "auto"},
		{"inherit", []Kind{KindInherit}, KindInherit, "inherit"},
		{"none", []Kind{KindNone}, KindNone, "none"},
		{"default", []Kind{KindDefault}, KindDefault, "default"},
		{"auto", []Kind{KindInherit}, KindFixed, "auto"},
		{"128", []Kind{KindAuto, KindInherit}, KindFixed, "128"},
		{"", nil, KindFixed, ""},
	}

	for _, tt := range tests {
		v := ParseValue(tt.raw, tt.accept...)
		if v.Kind() != tt.kind {
			t.Errorf("ParseValue(%q).Kind() = %v, want %v", tt.raw, v.Kind(), tt.kind)
		}
		if v.String() != tt.str {
			t.Errorf("ParseValue(%q).String() = %q, want %q", tt.raw, v.String(), tt.str)
		}
	}

	if Auto().Literal() != "" {
		t.Error("sentinel Literal() should be empty")
	}
	if Inherit().Or("48000") != "48000" {
		t.Error("Inherit().Or() should return the inherited value")
	}
	if Fixed("44100").Or("48000") != "44100" {
		t.Error("Fixed().Or() should return the literal")
	}
}

func TestMerge(t *testing.T) {
	defaults := Settings{"a": "1", "b": "2"}
	partial := Settings{"b": "3", "c": "4"}

	got := Merge(defaults, partial)
	want := Settings{"a": "1", "b": "3", "c": "4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	if defaults["b"] != "2" || len(partial) != 2 {
		t.Error("Merge() modified its inputs")
	}
}

func TestResolveInherited(t *testing.T) {
	stream := types.Stream{SamplingHz: 48000, Layout: "5.1", Channels: 6, FPS: 29.97}
	settings := Settings{
		KeySampling: SentinelInherit,
		KeyLayout:   SentinelInherit,
		KeyChannels: "2",
		KeyFPS:      SentinelInherit,
		KeyBitrate:  "64",
		"custom":    SentinelInherit,
	}

	got := ResolveInherited(settings, stream)
	want := Settings{
		KeySampling: "48000",
		KeyLayout:   "5.1",
		KeyChannels: "2",
		KeyFPS:      "29.97",
		KeyBitrate:  "64",
		"custom":    SentinelInherit,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveInherited() mismatch (-want +got):\n%s", diff)
	}

	again := ResolveInherited(got, stream)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("ResolveInherited() not idempotent (-once +twice):\n%s", diff)
	}

	if settings[KeySampling] != SentinelInherit {
		t.Error("ResolveInherited() modified its input")
	}
}

func TestResolveThenMapMatchesInheritMapping(t *testing.T) {
	opus, _ := Encoders(types.MediaAudio).Get("opus")
	stream := types.Stream{SamplingHz: 48000, Layout: "mono"}
	settings := Merge(opus.DefaultSettings(), Settings{KeySampling: SentinelInherit, KeyLayout: SentinelInherit})

	direct := opus.Mapping(settings, stream)
	resolved := opus.Mapping(ResolveInherited(settings, stream), stream)
	if diff := cmp.Diff(direct, resolved); diff != "" {
		t.Errorf("mapping differs after resolution (-direct +resolved):\n%s", diff)
	}
}
