package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smazurov/relaycoder/internal/config"
	"github.com/smazurov/relaycoder/internal/sources/network"
)

// CreateInputsCmd creates the inputs command.
func CreateInputsCmd() *cobra.Command {
	var serverConfigFile string
	settings := network.DefaultSettings()
	var mode, pushType string

	cmd := &cobra.Command{
		Use:   "inputs [address]",
		Short: "Show the engine inputs of a network source",
		Long: `Builds the engine input options and address of a network source. ` +
			`Without an address the source is pushed to the streaming server's own RTMP or HLS ingest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := config.LoadServerConfig(serverConfigFile)
			if err != nil {
				return err
			}

			settings.Mode = network.Mode(mode)
			settings.Push.Type = network.PushType(pushType)
			if len(args) == 1 {
				settings.Address = args[0]
			} else if !cmd.Flags().Changed("mode") {
				settings.Mode = network.ModePush
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, input := range network.BuildInputs(settings, serverConfig) {
				fmt.Fprintf(out, "%s (%s)\n", input.ID, network.ClassifyProtocol(input.Address))
				fmt.Fprintf(out, "  %s -i %s\n", input.Options.String(), input.Address)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&serverConfigFile, "server-config", "", "Ingest server configuration file")
	flags.StringVar(&mode, "mode", string(network.ModePull), "Source mode (pull, push)")
	flags.StringVar(&pushType, "push", string(network.PushRTMP), "Push ingest type (rtmp, hls)")
	flags.StringVarP(&settings.Username, "username", "u", "", "Source username")
	flags.StringVar(&settings.Password, "password", "", "Source password")
	flags.BoolVar(&settings.RTSP.UDP, "rtsp-udp", settings.RTSP.UDP, "Read RTSP over UDP")
	flags.Int64Var(&settings.RTSP.STimeout, "rtsp-timeout", settings.RTSP.STimeout, "RTSP socket timeout in microseconds")
	flags.BoolVar(&settings.HTTP.ReadNative, "http-native", settings.HTTP.ReadNative, "Read HTTP sources at their native rate")
	flags.StringVar(&settings.HTTP.UserAgent, "user-agent", "", "HTTP user agent")
	flags.IntVar(&settings.General.ThreadQueueSize, "thread-queue-size", settings.General.ThreadQueueSize, "Input thread queue size")

	return cmd
}
