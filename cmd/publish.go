package cmd

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/smazurov/relaycoder/internal/logging"
	"github.com/smazurov/relaycoder/internal/publication"
	"github.com/smazurov/relaycoder/internal/types"
)

// CreatePublishCmd creates the publish command.
func CreatePublishCmd() *cobra.Command {
	var storeFile, skillsFile, name string
	var settings map[string]string
	encoders := map[types.MediaType]*string{}
	decoders := map[types.MediaType]*string{}
	options := map[types.MediaType]*map[string]string{}

	cmd := &cobra.Command{
		Use:   "publish [channel] [service]",
		Short: "Create a publication in the store",
		Long: `Selects a service for a channel, applies encoder and decoder choices, and ` +
			`creates the egress in the store file. Prints the egress id and its engine command.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, service := args[0], args[1]
			logger := logging.GetLogger("publish").With("channel", channel, "service", service)

			backend, err := loadStore(storeFile, skillsFile)
			if err != nil {
				return err
			}

			draft, err := publication.Open(cmd.Context(), backend, channel)
			if err != nil {
				return err
			}
			if err := draft.SelectService(service); err != nil {
				return err
			}

			for _, t := range types.MediaTypes {
				if id := *encoders[t]; id != "" {
					if err := draft.SelectEncoder(t, id); err != nil {
						return err
					}
				}
				keys := lo.Keys(*options[t])
				slices.Sort(keys)
				for _, key := range keys {
					if err := draft.SetEncoderOption(t, key, (*options[t])[key]); err != nil {
						return err
					}
				}
				if id := *decoders[t]; id != "" {
					applied, err := draft.SelectDecoder(t, id)
					if err != nil {
						return err
					}
					if !applied {
						logger.Warn("Decoder ignored, the encoder does not transcode", "media_type", t, "decoder", id)
					}
				}
			}

			if err := draft.SetServiceSettings(settings); err != nil {
				return err
			}
			if name != "" {
				draft.Rename(name)
			}

			id, err := draft.Done(cmd.Context())
			if err != nil {
				return err
			}
			logger.Debug("Publication created", "id", id)

			e, _ := backend.GetEgress(id)
			fmt.Fprintln(cmd.OutOrStdout(), id)
			fmt.Fprintln(cmd.OutOrStdout(), e.Command.String())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&storeFile, "store", DefaultStoreFile, "Store file")
	flags.StringVar(&skillsFile, "skills", "", "Engine skills file, overrides the stored skills")
	flags.StringVar(&name, "name", "", "Publication name, the service name by default")
	flags.StringToStringVar(&settings, "set", nil, "Service setting, e.g. --set key=abcd")
	for _, t := range types.MediaTypes {
		encoders[t] = flags.String(string(t)+"-encoder", "", fmt.Sprintf("Encoder for the %s stream", t))
		decoders[t] = flags.String(string(t)+"-decoder", "", fmt.Sprintf("Decoder for the %s stream", t))
		options[t] = flags.StringToString(string(t)+"-option", nil, fmt.Sprintf("Encoder setting for the %s stream, e.g. bitrate=2048", t))
	}

	return cmd
}
