package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFlag is a value accepted by the ffmpeg -fflags input option.
type FormatFlag string

// Format flag constants
const (
	FlagGeneratePTS    FormatFlag = "genpts"
	FlagIgnoreDTS      FormatFlag = "igndts"
	FlagIgnoreIndex    FormatFlag = "ignidx"
	FlagDiscardCorrupt FormatFlag = "discardcorrupt"
	FlagNoBuffer       FormatFlag = "nobuffer"
	FlagFlushPackets   FormatFlag = "flush_packets"
	FlagNoFillIn       FormatFlag = "nofillin"
	FlagSortDTS        FormatFlag = "sortdts"
)

// DefaultThreadQueueSize is the input packet queue length used when none is configured.
const DefaultThreadQueueSize = 512

// OptionCategory groups format flags for presentation.
type OptionCategory string

const (
	CategoryTiming      OptionCategory = "Timing"
	CategoryErrorHandle OptionCategory = "Error Handling"
	CategoryLatency     OptionCategory = "Latency"
)

// Option describes one format flag.
type Option struct {
	Key           FormatFlag     `json:"key"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Category      OptionCategory `json:"category"`
	AppDefault    bool           `json:"app_default"`
	ConflictsWith []FormatFlag   `json:"conflicts_with,omitempty"`
}

// AllOptions lists the known format flags in presentation order.
var AllOptions = []Option{
	{
		Key:         FlagGeneratePTS,
		Name:        "Generate PTS",
		Description: "Generate missing presentation timestamps",
		Category:    CategoryTiming,
		AppDefault:  true,
	},
	{
		Key:           FlagIgnoreDTS,
		Name:          "Ignore DTS",
		Description:   "Ignore decode timestamps of broken sources",
		Category:      CategoryTiming,
		ConflictsWith: []FormatFlag{FlagSortDTS},
	},
	{
		Key:         FlagIgnoreIndex,
		Name:        "Ignore Index",
		Description: "Ignore the container index",
		Category:    CategoryErrorHandle,
	},
	{
		Key:         FlagDiscardCorrupt,
		Name:        "Discard Corrupt",
		Description: "Drop packets flagged as corrupt",
		Category:    CategoryErrorHandle,
	},
	{
		Key:         FlagNoBuffer,
		Name:        "No Buffer",
		Description: "Do not buffer frames during initial probing",
		Category:    CategoryLatency,
	},
	{
		Key:         FlagFlushPackets,
		Name:        "Flush Packets",
		Description: "Flush the IO context after each packet",
		Category:    CategoryLatency,
	},
	{
		Key:         FlagNoFillIn,
		Name:        "No Fill In",
		Description: "Do not infer values from other values",
		Category:    CategoryTiming,
	},
	{
		Key:           FlagSortDTS,
		Name:          "Sort DTS",
		Description:   "Reorder packets by decode timestamp",
		Category:      CategoryTiming,
		ConflictsWith: []FormatFlag{FlagIgnoreDTS},
	},
}

// GetOptionByKey returns a format flag description by its key.
func GetOptionByKey(key FormatFlag) *Option {
	for i := range AllOptions {
		if AllOptions[i].Key == key {
			return &AllOptions[i]
		}
	}
	return nil
}

// GetDefaultFlags returns the format flags enabled by default.
func GetDefaultFlags() []string {
	var defaults []string
	for _, option := range AllOptions {
		if option.AppDefault {
			defaults = append(defaults, string(option.Key))
		}
	}
	return defaults
}

// ValidateFlags checks selected format flags for known conflicts.
// Unknown flags are accepted and passed through.
func ValidateFlags(flags []string) error {
	selected := make(map[FormatFlag]bool, len(flags))
	for _, f := range flags {
		selected[FormatFlag(f)] = true
	}

	for _, f := range flags {
		option := GetOptionByKey(FormatFlag(f))
		if option == nil {
			continue
		}
		for _, conflict := range option.ConflictsWith {
			if selected[conflict] {
				return fmt.Errorf("flag '%s' conflicts with '%s'", option.Key, conflict)
			}
		}
	}
	return nil
}

// FormatFlagsArgs renders flags as "-fflags +a+b". It returns nil for an empty set.
func FormatFlagsArgs(flags []string) Args {
	if len(flags) == 0 {
		return nil
	}

	var b strings.Builder
	for _, f := range flags {
		b.WriteString("+")
		b.WriteString(f)
	}
	return Args{"-fflags", b.String()}
}

// ThreadQueueArgs renders the input packet queue length option.
func ThreadQueueArgs(size int) Args {
	return Args{"-thread_queue_size", strconv.Itoa(size)}
}
