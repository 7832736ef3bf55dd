package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	workdir string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "amxprobe",
	Short: "ApprovalMax OAuth diagnostic harness",
	Long: "Drives the ApprovalMax authorization-code flow, captures the redirect callback\n" +
		"and probes guessed API endpoints for purchase order events.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workdir != "" {
			if err := os.Chdir(workdir); err != nil {
				return fmt.Errorf("failed to change working directory: %w", err)
			}
		}

		// Real environment variables win over the file
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&workdir, "workdir", "w", "", "working directory")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}
