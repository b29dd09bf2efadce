package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/types"
)

var testStreams = []types.Stream{
	{Index: 0, Type: types.MediaVideo, Codec: "h264", FPS: 25, Width: 1280, Height: 720},
	{Index: 1, Type: types.MediaAudio, Codec: "aac", SamplingHz: 48000, Layout: "stereo", Channels: 2},
}

func videoSelector(codecs []string) Selector {
	return Selector{
		Type:     types.MediaVideo,
		Streams:  testStreams,
		Codecs:   codecs,
		Encoders: []string{"copy", "none", "libx264", "libx265", "h264_videotoolbox"},
		Decoders: []string{"h264_cuvid"},
	}
}

func ids(cs []coders.Coder) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID()
	}
	return out
}

func profileWith(stream int, encoder string) Profile {
	p := New()
	p.Stream = stream
	p.Encoder.Coder = encoder
	return p
}

func TestOfferCopyGatedOnSourceCodec(t *testing.T) {
	p := profileWith(0, "libx264")

	offer, err := videoSelector([]string{"h264"}).Offer(p)
	if err != nil {
		t.Fatalf("Offer() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"copy", "libx264", "h264_videotoolbox"}, ids(offer.Encoders)); diff != "" {
		t.Errorf("Offer().Encoders mismatch (-want +got):\n%s", diff)
	}

	// Changing the accepted codecs changes offerability without touching the stream.
	offer, err = videoSelector([]string{"h265"}).Offer(p)
	if err != nil {
		t.Fatalf("Offer() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"libx265"}, ids(offer.Encoders)); diff != "" {
		t.Errorf("Offer().Encoders mismatch (-want +got):\n%s", diff)
	}
	if testStreams[0].Codec != "h264" {
		t.Error("Offer() modified the stream")
	}
}

func TestOfferNoSuitableEncoder(t *testing.T) {
	tests := []struct {
		name    string
		codecs  []string
		encoder string
	}{
		{"no accepted codec", []string{"vp9"}, "libx264"},
		{"unknown selected encoder", []string{"h264"}, "does_not_exist"},
		{"unavailable selected encoder", []string{"h264"}, "h264_nvenc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer, err := videoSelector(tt.codecs).Offer(profileWith(0, tt.encoder))
			if err != nil {
				t.Fatalf("Offer() unexpected error: %v", err)
			}
			if offer.Suitable {
				t.Error("Offer().Suitable = true, want false")
			}
			if len(offer.Decoders) != 0 {
				t.Errorf("Offer().Decoders = %v, want none", ids(offer.Decoders))
			}
		})
	}
}

func TestOfferStreamErrors(t *testing.T) {
	s := videoSelector([]string{"h264"})

	for _, stream := range []int{-1, 5, 1} {
		_, err := s.Offer(profileWith(stream, "libx264"))
		if !types.HasCode(err, types.ErrCodeStreamNotFound) {
			t.Errorf("Offer(stream=%d) error = %v, want %s", stream, err, types.ErrCodeStreamNotFound)
		}
	}
}

func TestOfferDecoders(t *testing.T) {
	s := videoSelector([]string{"h264"})

	offer, err := s.Offer(profileWith(0, "libx264"))
	if err != nil {
		t.Fatalf("Offer() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"default", "h264_cuvid"}, ids(offer.Decoders)); diff != "" {
		t.Errorf("Offer().Decoders mismatch (-want +got):\n%s", diff)
	}
	if !offer.ChooseDecoder() {
		t.Error("ChooseDecoder() = false, want true")
	}
	if offer.Decoder == nil || offer.Decoder.ID() != coders.DefaultDecoderID {
		t.Errorf("Offer().Decoder = %v, want default", offer.Decoder)
	}

	for _, passthrough := range []string{"copy", "none"} {
		offer, err := s.Offer(profileWith(0, passthrough))
		if err != nil {
			t.Fatalf("Offer() unexpected error: %v", err)
		}
		if len(offer.Decoders) != 0 || offer.Decoder != nil {
			t.Errorf("%s: decoders offered for a passthrough encoder", passthrough)
		}
	}
}

func TestSelectEncoderResetsToDefaults(t *testing.T) {
	var changes []Change
	s := videoSelector([]string{"h264", "h265"})
	s.OnChange = func(c Change) { changes = append(changes, c) }

	p := profileWith(0, "libx264")
	p.Encoder.Settings = coders.Settings{"bitrate": "999"}

	next, change := s.SelectEncoder(p, "libx265")

	if next.Encoder.Coder != "libx265" {
		t.Errorf("Encoder.Coder = %q, want libx265", next.Encoder.Coder)
	}
	if next.Encoder.Settings["bitrate"] != "4096" {
		t.Errorf("Encoder.Settings[bitrate] = %q, want defaults", next.Encoder.Settings["bitrate"])
	}
	if next.Encoder.Mapping[1] != "libx265" {
		t.Errorf("Encoder.Mapping = %v", next.Encoder.Mapping)
	}
	if change.Automatic {
		t.Error("SelectEncoder() emitted an automatic change")
	}
	if len(changes) != 1 {
		t.Fatalf("OnChange called %d times, want 1", len(changes))
	}
	if p.Encoder.Coder != "libx264" || p.Encoder.Settings["bitrate"] != "999" {
		t.Error("SelectEncoder() modified its input profile")
	}
}

func TestSelectUnknownEncoderKeepsSettings(t *testing.T) {
	s := videoSelector([]string{"h264"})
	p := profileWith(0, "libx264")
	p.Encoder.Settings = coders.Settings{"bitrate": "999"}

	next, _ := s.SelectEncoder(p, "missing")
	if next.Encoder.Coder != "missing" || next.Encoder.Settings["bitrate"] != "999" {
		t.Errorf("SelectEncoder(missing) = %+v", next.Encoder)
	}

	offer, err := s.Offer(next)
	if err != nil {
		t.Fatalf("Offer() unexpected error: %v", err)
	}
	if offer.Suitable {
		t.Error("Offer().Suitable = true for an unknown encoder")
	}
}

func TestChangeEncoderSettings(t *testing.T) {
	s := videoSelector([]string{"h264"})
	p, _ := s.SelectEncoder(profileWith(0, ""), "libx264")

	next, change := s.ChangeEncoderSettings(p, coders.Settings{"bitrate": "2000", "gop": "auto"})

	if next.Encoder.Settings["preset"] != "ultrafast" {
		t.Error("ChangeEncoderSettings() lost default fields")
	}
	want := "-codec:v libx264 -preset:v ultrafast -b:v 2000k -maxrate:v 2000k -bufsize:v 2000k -r 25 -pix_fmt yuv420p -vsync 1 -tune:v zerolatency"
	if got := next.Encoder.Mapping.String(); got != want {
		t.Errorf("Mapping = %q, want %q", got, want)
	}
	if change.Automatic {
		t.Error("ChangeEncoderSettings() emitted an automatic change")
	}
}

func TestSetEncoderOptionSyncsChannels(t *testing.T) {
	s := Selector{
		Type:     types.MediaAudio,
		Streams:  testStreams,
		Codecs:   []string{"opus"},
		Encoders: []string{"opus"},
	}
	p, _ := s.SelectEncoder(profileWith(1, ""), "opus")

	next, _ := s.SetEncoderOption(p, "layout", "mono")
	if next.Encoder.Settings["channels"] != "1" {
		t.Errorf("channels = %q, want 1", next.Encoder.Settings["channels"])
	}
	if got := next.Encoder.Mapping.String(); got != "-codec:a opus -b:a 64k -vbr on -shortest -af aresample=osr=44100:ocl=mono" {
		t.Errorf("Mapping = %q", got)
	}
}

func TestDecoderOperations(t *testing.T) {
	s := videoSelector([]string{"h264"})

	copyProfile := profileWith(0, "copy")
	if _, _, ok := s.SelectDecoder(copyProfile, "h264_cuvid"); ok {
		t.Error("SelectDecoder() applied to a passthrough profile")
	}
	if _, _, ok := s.ChangeDecoderSettings(copyProfile, nil); ok {
		t.Error("ChangeDecoderSettings() applied to a passthrough profile")
	}

	p, _ := s.SelectEncoder(profileWith(0, ""), "libx264")
	next, change, ok := s.SelectDecoder(p, "h264_cuvid")
	if !ok {
		t.Fatal("SelectDecoder() not applied")
	}
	if got := next.Decoder.Mapping.String(); got != "-hwaccel cuvid -codec:v h264_cuvid" {
		t.Errorf("Decoder.Mapping = %q", got)
	}
	if change.Decoder.Coder != "h264_cuvid" || change.Automatic {
		t.Errorf("change = %+v", change)
	}

	next, _, ok = s.ChangeDecoderSettings(next, coders.Settings{"extra": "1"})
	if !ok || next.Decoder.Settings["extra"] != "1" {
		t.Errorf("ChangeDecoderSettings() = %+v, %v", next.Decoder, ok)
	}
}

func TestInitializeEmitsAutomatic(t *testing.T) {
	var changes []Change
	s := videoSelector([]string{"h264"})
	s.OnChange = func(c Change) { changes = append(changes, c) }

	p := profileWith(0, "libx264")
	p.Encoder.Settings = coders.Settings{"bitrate": "1500"}

	next, change := s.Initialize(p)

	if !change.Automatic {
		t.Error("Initialize() change.Automatic = false, want true")
	}
	if len(changes) != 1 || !changes[0].Automatic {
		t.Errorf("OnChange received %+v", changes)
	}
	if next.Encoder.Settings["bitrate"] != "1500" || next.Encoder.Settings["preset"] != "ultrafast" {
		t.Errorf("Initialize() settings = %v", next.Encoder.Settings)
	}
	if len(next.Encoder.Mapping) == 0 {
		t.Error("Initialize() did not compute the mapping")
	}
	if next.Decoder.Settings == nil {
		t.Error("Initialize() did not resolve the decoder")
	}
}
