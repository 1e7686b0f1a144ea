package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/faas-installer/internal/platform"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the detected platform and artifact name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		key := platform.Detect(cmd.Context())
		w := newWriter(cmd)

		w.Printf("%s %s\n", w.Bold("Platform:"), key)

		artifact, err := key.ArtifactName(cfg.BaseName)
		if err != nil {
			return err
		}

		w.Printf("%s %s\n", w.Bold("Artifact:"), artifact)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(platformCmd)
}
