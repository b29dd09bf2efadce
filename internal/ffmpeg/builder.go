package ffmpeg

import (
	"errors"
	"fmt"
)

// Binary is the executable the produced command lines refer to.
const Binary = "ffmpeg"

// Base returns the global arguments every command starts with.
func Base() Args {
	return Args{"-hide_banner"}
}

// Input is one input of a transcoding process.
type Input struct {
	ID      string `json:"id" toml:"id"`
	Address string `json:"address" toml:"address"`
	Options Args   `json:"options" toml:"options"`
}

// Output is one output of a transcoding process.
type Output struct {
	ID      string `json:"id" toml:"id"`
	Address string `json:"address" toml:"address"`
	Options Args   `json:"options" toml:"options"`
}

// ErrNoInput is returned when a command has no inputs.
var ErrNoInput = errors.New("at least one input is required")

// ErrNoOutput is returned when a command has no outputs.
var ErrNoOutput = errors.New("at least one output is required")

// BuildCommand assembles a full argument vector from global options,
// inputs and outputs. Input options precede their -i address and output
// options precede their address.
func BuildCommand(global Args, inputs []Input, outputs []Output) (Args, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	if len(outputs) == 0 {
		return nil, ErrNoOutput
	}

	cmd := Args{Binary}
	cmd = append(cmd, Base()...)
	cmd = append(cmd, global...)

	for i, in := range inputs {
		if in.Address == "" {
			return nil, fmt.Errorf("input %d has no address", i)
		}
		cmd = append(cmd, in.Options...)
		cmd = append(cmd, "-i", in.Address)
	}

	for i, out := range outputs {
		if out.Address == "" {
			return nil, fmt.Errorf("output %d has no address", i)
		}
		cmd = append(cmd, out.Options...)
		cmd = append(cmd, out.Address)
	}

	return cmd, nil
}

// MapStream renders a -map option selecting one stream of one input.
func MapStream(input, stream int) Args {
	return Args{"-map", fmt.Sprintf("%d:%d", input, stream)}
}
