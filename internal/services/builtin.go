package services

import "github.com/smazurov/relaycoder/internal/ffmpeg"

var (
	flv    = ffmpeg.Args{"-f", "flv"}
	mpegts = ffmpeg.Args{"-f", "mpegts"}

	h264AAC = CodecRequirement{Audio: Of("aac"), Video: Of("h264")}
	h264Any = CodecRequirement{Audio: Of("aac", "mp3"), Video: Of("h264")}
	anyAny  = CodecRequirement{Audio: AnyOf(), Video: AnyOf()}
)

func rtmpService(id, name string, category Category, protocols Set, codecs CodecRequirement, address string) Service {
	return Service{
		ID:       id,
		Name:     name,
		Category: category,
		Requires: Requirement{Codecs: codecs, Protocols: protocols, Formats: []string{"flv"}},
		Outputs:  []Template{{Address: address, Options: flv}},
	}
}

var catalog = func() *Registry {
	r := NewRegistry()
	for _, s := range []Service{
		rtmpService("facebook", "Facebook Live", CategoryPlatform, Of("rtmps"), h264AAC,
			"rtmps://live-api-s.facebook.com:443/rtmp/{key}"),
		rtmpService("youtube", "YouTube Live", CategoryPlatform, Of("rtmp", "rtmps"), h264Any,
			"rtmp://a.rtmp.youtube.com/live2/{key}"),
		rtmpService("twitter", "Twitter", CategoryPlatform, Of("rtmp", "rtmps"), h264AAC,
			"{address}/{key}"),
		rtmpService("twitch", "Twitch", CategoryPlatform, Of("rtmp"), h264AAC,
			"rtmp://live.twitch.tv/app/{key}"),
		rtmpService("instagram", "Instagram", CategoryPlatform, Of("rtmps"), h264AAC,
			"rtmps://live-upload.instagram.com:443/rtmp/{key}"),
		rtmpService("vimeo", "Vimeo", CategoryPlatform, Of("rtmps"), h264AAC,
			"rtmps://rtmp-global.cloud.vimeo.com:443/live/{key}"),
		rtmpService("restream", "Restream", CategoryPlatform, Of("rtmp"), h264AAC,
			"rtmp://live.restream.io/live/{key}"),
		rtmpService("livespotting", "Livespotting", CategoryPlatform, Of("rtmp"), h264AAC,
			"{address}/{key}"),
		rtmpService("brightcove", "Brightcove", CategoryPlatform, Of("rtmp", "rtmps"), h264AAC,
			"{address}/{key}"),
		rtmpService("akamai", "Akamai", CategoryPlatform, Of("rtmp"), h264Any,
			"{address}/{key}"),
		rtmpService("dacast", "DaCast", CategoryPlatform, Of("rtmp"), h264AAC,
			"{address}/{key}"),
		rtmpService("cdn77", "CDN77", CategoryPlatform, Of("rtmp"), h264AAC,
			"{address}/{key}"),
		rtmpService("core", "Restreamer Core", CategorySoftware, Of("rtmp", "rtmps"), anyAny,
			"{address}"),
		rtmpService("wowza", "Wowza", CategorySoftware, Of("rtmp", "rtmps"), h264Any,
			"{address}/{key}"),
		rtmpService("red5", "Red5", CategorySoftware, Of("rtmp"), h264AAC,
			"{address}/{key}"),
		{
			ID:       "icecast",
			Name:     "Icecast",
			Category: CategorySoftware,
			Requires: Requirement{
				Codecs:    CodecRequirement{Audio: Of("opus", "vorbis", "mp3", "aac"), Video: Of("none")},
				Protocols: Of("icecast"),
				Formats:   []string{"ogg", "mp3", "adts"},
			},
			Outputs: []Template{{Address: "{address}", Options: ffmpeg.Args{"-f", "ogg", "-content_type", "audio/ogg"}}},
		},
		{
			ID:       "image2",
			Name:     "Snapshot",
			Category: CategoryUniversal,
			Requires: Requirement{
				Codecs:    CodecRequirement{Audio: Of("none"), Video: AnyOf()},
				Protocols: Of("file", "http", "https"),
				Formats:   []string{"image2"},
			},
			Outputs: []Template{{Address: "{address}", Options: ffmpeg.Args{"-f", "image2", "-update", "1"}}},
		},
		{
			ID:       "rtsp",
			Name:     "RTSP",
			Category: CategoryUniversal,
			Requires: Requirement{Codecs: anyAny, Protocols: Of("rtsp", "rtsps"), Formats: []string{"rtsp"}},
			Outputs:  []Template{{Address: "{address}", Options: ffmpeg.Args{"-f", "rtsp", "-rtsp_transport", "tcp"}}},
		},
		rtmpService("rtmp", "RTMP", CategoryUniversal, Of("rtmp", "rtmps"), h264Any, "{address}"),
		{
			ID:       "hls",
			Name:     "HLS",
			Category: CategoryUniversal,
			Requires: Requirement{
				Codecs:    CodecRequirement{Audio: Of("aac", "mp3"), Video: Of("h264", "h265")},
				Protocols: Of("http", "https"),
				Formats:   []string{"hls"},
			},
			Outputs: []Template{{Address: "{address}", Options: ffmpeg.Args{
				"-f", "hls", "-hls_time", "2", "-hls_list_size", "6", "-hls_flags", "delete_segments",
			}}},
		},
		{
			ID:       "dash",
			Name:     "MPEG-DASH",
			Category: CategoryUniversal,
			Requires: Requirement{
				Codecs:    CodecRequirement{Audio: Of("aac", "opus"), Video: Of("h264", "h265", "vp9")},
				Protocols: Of("http", "https"),
				Formats:   []string{"dash"},
			},
			Outputs: []Template{{Address: "{address}", Options: ffmpeg.Args{"-f", "dash"}}},
		},
		{
			ID:       "srt",
			Name:     "SRT",
			Category: CategoryUniversal,
			Requires: Requirement{Codecs: anyAny, Protocols: Of("srt"), Formats: []string{"mpegts"}},
			Outputs:  []Template{{Address: "{address}", Options: mpegts}},
		},
		{
			ID:       "udp",
			Name:     "UDP",
			Category: CategoryUniversal,
			Requires: Requirement{Codecs: anyAny, Protocols: Of("udp"), Formats: []string{"mpegts"}},
			Outputs:  []Template{{Address: "{address}", Options: mpegts}},
		},
		{
			ID:       "mpegts",
			Name:     "MPEG-TS",
			Category: CategoryUniversal,
			Requires: Requirement{Codecs: anyAny, Protocols: Of("tcp", "http", "https"), Formats: []string{"mpegts"}},
			Outputs:  []Template{{Address: "{address}", Options: mpegts}},
		},
		{
			ID:       "framebuffer",
			Name:     "Framebuffer",
			Category: CategoryUniversal,
			Requires: Requirement{
				Codecs:    CodecRequirement{Audio: Of("none"), Video: AnyOf()},
				Protocols: Of("file"),
				Formats:   []string{"fbdev"},
			},
			Outputs: []Template{{Address: "{device}", Options: ffmpeg.Args{"-pix_fmt", "bgra", "-f", "fbdev"}}},
		},
	} {
		r.Register(s)
	}
	return r
}()

// Catalog returns the built-in services.
func Catalog() *Registry {
	return catalog
}
