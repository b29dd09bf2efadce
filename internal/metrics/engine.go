package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/smazurov/relaycoder/internal/types"
)

var (
	engineCoders = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "engine",
		Name:      "coders",
		Help:      "Number of coders the engine reports",
	}, []string{"kind", "media_type"})

	engineInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "engine",
		Name:      "info",
		Help:      "Engine build information, always 1",
	}, []string{"ffmpeg_version", "compatible"})
)

// SetEngineSkills exports the size of the engine's coder lists and its
// version. Earlier version labels are dropped.
func SetEngineSkills(skills types.Skills, compatible bool) {
	for _, t := range types.MediaTypes {
		engineCoders.WithLabelValues("encoder", string(t)).Set(float64(len(skills.Encoders.For(t))))
		engineCoders.WithLabelValues("decoder", string(t)).Set(float64(len(skills.Decoders.For(t))))
	}

	engineInfo.Reset()
	label := "false"
	if compatible {
		label = "true"
	}
	engineInfo.WithLabelValues(skills.FFmpeg.Version, label).Set(1)
}
