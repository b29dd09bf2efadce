package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smazurov/relaycoder/internal/services"
)

// CreateServicesCmd creates the services command.
func CreateServicesCmd() *cobra.Command {
	var storeFile, skillsFile, category string

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List publication services",
		Long:  `Lists the service catalog and marks the services the engine's skills can feed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := loadStore(storeFile, skillsFile)
			if err != nil {
				return err
			}
			skills, err := backend.Skills(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range services.Annotate(services.Catalog().ByCategory(category), skills.Normalize()) {
				state := "enabled"
				if !e.Enabled {
					state = "disabled"
				}
				fmt.Fprintf(out, "%-16s %-28s %-10s %s\n", e.ID, e.Name, e.Category, state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeFile, "store", DefaultStoreFile, "Store file")
	cmd.Flags().StringVar(&skillsFile, "skills", "", "Engine skills file, overrides the stored skills")
	cmd.Flags().StringVar(&category, "category", services.CategoryAll, "Category (all, platform, software, universal)")

	return cmd
}
