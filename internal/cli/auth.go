package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
)

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as administrator and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if username == "" {
				username = prompt(in, out, "Username: ")
			}
			if password == "" {
				password = prompt(in, out, "Password: ")
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := app.NewAuth(s.tokens, s.client).Login(cmd.Context(), username, password); err != nil {
				// A 401 here means bad credentials, not an expired session.
				if errors.Is(err, domain.ErrAuthExpired) {
					return errors.New(domain.Message(err, "login rejected"))
				}
				return err
			}
			fmt.Fprintln(out, "logged in")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := app.NewAuth(s.tokens, s.client).Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			token, ok, err := s.tokens.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "not logged in")
				return nil
			}
			fmt.Fprintln(out, describeToken(token, time.Now()))
			return nil
		},
	}
}

// describeToken reads the token's claims for display only. The signature is
// not checked; the backend remains the judge of validity.
func describeToken(token string, now time.Time) string {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "logged in (token is not a readable JWT)"
	}
	who := claims.Subject
	if who == "" {
		who = "unknown user"
	}
	if claims.ExpiresAt == nil {
		return fmt.Sprintf("logged in as %s", who)
	}
	exp := claims.ExpiresAt.Time
	if !exp.After(now) {
		return fmt.Sprintf("logged in as %s, token expired at %s", who, exp.Format(time.RFC3339))
	}
	return fmt.Sprintf("logged in as %s, token expires at %s (in %s)", who, exp.Format(time.RFC3339), exp.Sub(now).Round(time.Second))
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
