package network

import (
	"strconv"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
)

// InputID is the id of the single input a network source produces.
const InputID = "input_0"

// Fixed probe durations in microseconds.
const (
	rtmpAnalyzeDuration = "3000000"
	httpAnalyzeDuration = "20000000"
)

// InputAddress returns the address the engine reads from. Pulled streams
// use the configured address, pushed streams the local ingest.
func InputAddress(settings Settings, config ServerConfig) string {
	if settings.Mode != ModePush {
		return settings.Address
	}
	if settings.Push.Type == PushHLS {
		return LocalHLSAddress(config)
	}
	return LocalRTMPAddress(config)
}

// BuildInputOptions returns the input options for the settings. Format
// flags and the queue size always come first; pulled streams add the
// options of their protocol class.
func BuildInputOptions(settings Settings, class string) ffmpeg.Args {
	options := ffmpeg.FormatFlagsArgs(settings.General.FFlags)
	options = append(options, ffmpeg.ThreadQueueArgs(settings.General.ThreadQueueSize)...)

	if settings.Mode != ModePull {
		return options
	}

	switch class {
	case ClassRTSP:
		transport := "tcp"
		if settings.RTSP.UDP {
			transport = "udp"
		}
		options = append(options,
			"-timeout", strconv.FormatInt(settings.RTSP.STimeout, 10),
			"-rtsp_transport", transport,
		)
	case ClassRTMP:
		options = append(options, "-analyzeduration", rtmpAnalyzeDuration)
	case ClassHTTP:
		options = append(options, "-analyzeduration", httpAnalyzeDuration)
		if settings.HTTP.ReadNative {
			options = append(options, "-re")
		}
		if settings.HTTP.ForceFramerate {
			options = append(options, "-r", strconv.Itoa(settings.HTTP.Framerate))
		}
		if settings.HTTP.UserAgent != "" {
			options = append(options, "-user_agent", settings.HTTP.UserAgent)
		}
	}

	return options
}

// BuildInputs returns the engine input for a network source. Pulled
// addresses get the configured credentials.
func BuildInputs(settings Settings, config ServerConfig) []ffmpeg.Input {
	address := InputAddress(settings, config)
	class := ClassifyProtocol(address)

	if settings.Mode == ModePull {
		address = InjectCredentials(address, settings.Username, settings.Password)
	}

	return []ffmpeg.Input{{
		ID:      InputID,
		Address: address,
		Options: BuildInputOptions(settings, class),
	}}
}
