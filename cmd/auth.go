package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/tubemetrics/internal/format"
	"github.com/teemow/tubemetrics/internal/google"
)

// newSessionManager builds a session manager over the default token
// location and the browser consent flow.
func newSessionManager(consentTimeout time.Duration) (*google.SessionManager, error) {
	store, err := google.NewDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token location: %w", err)
	}
	flow := &google.BrowserFlow{Timeout: consentTimeout}
	return google.NewSessionManager(store, flow, nil), nil
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Google authorization",
		Long: `Manage the OAuth2 authorization used for YouTube API access.

The authorization is stored as a token file (default ~/.tubemetrics/token.json,
override with ` + google.EnvTokenPath + `). The OAuth client configuration is
read from the first of:
  1. ` + google.EnvCredentialsPath + ` (environment override)
  2. ~/.tubemetrics/credentials.json
  3. credentials.json next to the tubemetrics binary`,
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthRevokeCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var consentTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize via the browser consent flow",
		Long: `Run the interactive Google consent flow and persist the resulting
token. Always starts a fresh consent, replacing any stored token; use
"auth status" to check whether a login is needed at all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			session, err := newSessionManager(consentTimeout)
			if err != nil {
				return err
			}

			tok, err := session.Authenticate(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Authorized. Token stored at %s\n", session.TokenPath())
			if !tok.Expiry.IsZero() {
				fmt.Printf("Access token valid until %s\n", tok.Expiry.Format(time.RFC3339))
			}
			fmt.Println("Granted scopes:")
			for _, scope := range google.Scopes {
				fmt.Printf("  - %s\n", scope)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&consentTimeout, "consent-timeout", google.DefaultConsentTimeout,
		"How long to wait for the browser consent to complete")
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the authorization status",
		Long: `Report whether a token is stored, whether it is currently usable, and
when the access token expires. Never starts a consent flow.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSessionManager(0)
			if err != nil {
				return err
			}

			pairs := [][2]string{
				{"Token file", session.TokenPath()},
			}

			if !session.HasStoredToken() {
				pairs = append(pairs, [2]string{"Stored token", "no"})
				fmt.Print(format.KV(pairs))
				fmt.Println("\nNot authorized. Run \"tubemetrics auth login\" to authorize.")
				return nil
			}
			pairs = append(pairs, [2]string{"Stored token", "yes"})

			if tok, err := session.StoredToken(); err == nil {
				expiry := tok.Expiry()
				switch {
				case expiry.IsZero():
					pairs = append(pairs, [2]string{"Access token expiry", "none recorded"})
				case expiry.Before(time.Now()):
					pairs = append(pairs, [2]string{"Access token expiry",
						expiry.Format(time.RFC3339) + " (expired, refreshes on next use)"})
				default:
					pairs = append(pairs, [2]string{"Access token expiry",
						expiry.Format(time.RFC3339) + " (valid)"})
				}
			}

			if session.IsAuthenticated(cmd.Context()) {
				pairs = append(pairs, [2]string{"Usable", "yes"})
			} else {
				pairs = append(pairs, [2]string{"Usable",
					"no (refresh failed; run \"tubemetrics auth login\" to re-consent)"})
			}

			fmt.Print(format.KV(pairs))
			fmt.Println("\nRequested scopes:")
			for _, scope := range google.Scopes {
				fmt.Printf("  - %s\n", scope)
			}
			return nil
		},
	}
}

func newAuthRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Revoke the stored authorization",
		Long: `Invalidate the grant at Google and delete the local token file. Local
credentials are cleared even when the remote revocation fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSessionManager(0)
			if err != nil {
				return err
			}

			if !session.HasStoredToken() {
				fmt.Println("No stored authorization to revoke.")
				return nil
			}

			ctx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := session.Revoke(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: remote revocation failed: %v\n", err)
				fmt.Println("Local credentials have been cleared. If the grant is still listed at")
				fmt.Println("https://myaccount.google.com/permissions, remove it there.")
				return nil
			}

			fmt.Println("✅ Authorization revoked and local token deleted.")
			return nil
		},
	}
}
