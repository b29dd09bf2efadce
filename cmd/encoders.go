package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/publication"
	"github.com/smazurov/relaycoder/internal/types"
)

// CreateEncodersCmd creates the encoders command.
func CreateEncodersCmd() *cobra.Command {
	var storeFile, skillsFile string

	cmd := &cobra.Command{
		Use:   "encoders [channel] [service]",
		Short: "Show the encoder offer of a channel for a service",
		Long: `Preselects the video and audio profiles of a channel for a service and lists ` +
			`the encoders and decoders that may be chosen.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := loadStore(storeFile, skillsFile)
			if err != nil {
				return err
			}

			draft, err := publication.Open(cmd.Context(), backend, args[0])
			if err != nil {
				return err
			}
			if err := draft.SelectService(args[1]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s for %s\n", draft.Metadata().Name, args[0])
			for _, t := range types.MediaTypes {
				p := draft.Profile(t)
				fmt.Fprintf(out, "%s:\n", t)
				fmt.Fprintf(out, "  %-10s %s (stream %d)\n", "selected:", p.Encoder.Coder, p.Stream)

				offer, err := draft.Offer(t)
				if err != nil {
					fmt.Fprintf(out, "  %-10s %v\n", "error:", err)
					continue
				}
				printList(out, "encoders", ids(offer.Encoders))
				if offer.ChooseDecoder() {
					printList(out, "decoders", ids(offer.Decoders))
				}
				if len(p.Encoder.Mapping) > 0 {
					fmt.Fprintf(out, "  %-10s %s\n", "mapping:", p.Encoder.Mapping.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeFile, "store", DefaultStoreFile, "Store file")
	cmd.Flags().StringVar(&skillsFile, "skills", "", "Engine skills file, overrides the stored skills")

	return cmd
}

func ids(list []coders.Coder) []string {
	return lo.Map(list, func(c coders.Coder, _ int) string { return c.ID() })
}
