package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/app"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/cryptox"
	"github.com/aussiebroadwan/amxprobe/pkg/jwtx"
	"github.com/spf13/cobra"
)

var (
	callbackURL         string
	exchangeRedirectURI string
)

func init() {
	exchangeCmd.Flags().StringVar(&callbackURL, "callback-url", "", "full callback URL copied from the browser")
	exchangeCmd.Flags().StringVar(&exchangeRedirectURI, "redirect-uri", "", "redirect URI sent with the exchange (default: callback URL without its query)")
	_ = exchangeCmd.MarkFlagRequired("callback-url")
	rootCmd.AddCommand(exchangeCmd)
}

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Exchange the code from a pasted callback URL",
	Long: "Redeems the authorization code carried by a callback URL and prints a masked\n" +
		"summary of the issued tokens. Pair with auth-url when no server is running.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		code, _, err := approvalsdk.ParseAuthorizationCallbackURL(callbackURL)
		if err != nil {
			return err
		}

		redirect := exchangeRedirectURI
		if redirect == "" {
			redirect, err = stripQuery(callbackURL)
			if err != nil {
				return err
			}
		}

		client := approvalsdk.NewSDKClient(cfg.SDKConfig())
		tokens, err := client.ExchangeAuthorizationCode(cmd.Context(), code, redirect)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "token_type:    %s\n", tokens.TokenType)
		fmt.Fprintf(out, "access_token:  %s\n", cryptox.MaskToken(tokens.AccessToken))
		fmt.Fprintf(out, "fingerprint:   %s\n", cryptox.FingerprintToken(tokens.AccessToken))
		fmt.Fprintf(out, "refresh_token: %t\n", tokens.RefreshToken != "")
		if exp := tokens.ExpiresAt(time.Now()); exp != nil {
			fmt.Fprintf(out, "expires_at:    %s\n", exp.UTC().Format(time.RFC3339))
		}
		if tokens.Scope != "" {
			fmt.Fprintf(out, "scope:         %s\n", tokens.Scope)
		}

		claims, err := jwtx.Inspect(tokens.AccessToken)
		switch {
		case errors.Is(err, jwtx.ErrOpaqueToken):
			fmt.Fprintln(out, "format:        opaque")
		case err == nil:
			fmt.Fprintf(out, "format:        jwt (iss=%s sub=%s)\n", claims.Issuer, claims.Subject)
		}
		return nil
	},
}

func stripQuery(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse callback URL: %w", err)
	}
	u.RawQuery, u.Fragment = "", ""
	return u.String(), nil
}
