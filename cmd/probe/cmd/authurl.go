package cmd

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/amxprobe/internal/probe/app"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/spf13/cobra"
)

var redirectURI string

func init() {
	authURLCmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "redirect URI (default: APPROVALMAX_REDIRECT_URI)")
	rootCmd.AddCommand(authURLCmd)
}

var authURLCmd = &cobra.Command{
	Use:   "auth-url",
	Short: "Print a consent URL with a fresh state",
	Long: "Prints a consent URL without starting the server. The state is not remembered,\n" +
		"so the resulting callback only succeeds against a server running with STRICT_STATE=false.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		redirect := redirectURI
		if redirect == "" {
			redirect = cfg.RedirectURI
		}
		if redirect == "" {
			return errors.New("no redirect URI: set APPROVALMAX_REDIRECT_URI or pass --redirect-uri")
		}

		state, err := approvalsdk.GenerateState()
		if err != nil {
			return err
		}

		client := approvalsdk.NewSDKClient(cfg.SDKConfig())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "state: %s\n", state)
		fmt.Fprintln(out, client.BuildAuthorizeURL(state, redirect))
		return nil
	},
}
