package main

import (
	"github.com/spf13/cobra"

	"github.com/cpunion/claim-debate/pkg/report"
	"github.com/cpunion/claim-debate/pkg/roles"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Print the resolved role instructions",
	Long: `Print the system instruction each role receives, after applying the
overrides from --roles-file or roles_file in the config.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("roles-file")
		if path == "" {
			cfg, err := loadConfig(cmd)
			if err == nil {
				path = cfg.RolesFile
			}
		}

		registry, err := roles.LoadFile(path)
		if err != nil {
			return err
		}

		p := report.NewPrinter(cmd.OutOrStdout())
		for _, role := range registry.Roles() {
			instruction, err := registry.InstructionFor(role)
			if err != nil {
				return err
			}
			p.Persona(role, instruction)
		}
		return nil
	},
}
