package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cpunion/claim-debate/pkg/config"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "claimdebate",
	Short: "Debate whether a claim faithfully represents a fact",
	Long: `claimdebate stages a fixed debate between a Critic, a Defender, a
Fact-Checker and a Mediator over a fact and a claim, then asks an
impartial adjudicator for a scored verdict.

Settings come from claimdebate.yaml, a .env file and CLAIMDEBATE_*
environment variables. The API key may also be taken from
GOOGLE_API_KEY or OPENAI_API_KEY.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./claimdebate.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default is ./.env)")
	rootCmd.PersistentFlags().String("provider", "", "generation backend: gemini or openai")
	rootCmd.PersistentFlags().String("model", "", "model name (default depends on provider)")
	rootCmd.PersistentFlags().String("roles-file", "", "YAML file overriding role instructions")

	rootCmd.AddCommand(runCmd, rolesCmd, verdictCmd)
}

// loadConfig resolves settings with flags taking precedence over env and file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if envFile != "" {
		config.LoadDotEnv(envFile)
	} else {
		config.LoadDotEnv()
	}

	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	flags := map[string]string{
		"provider":   "provider",
		"model":      "model",
		"roles_file": "roles-file",
		"event_log":  "event-log",
	}
	for key, name := range flags {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
