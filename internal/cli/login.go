package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"QKart/internal/client"
)

// NewLoginCommand signs in and prints the token. The CLI does not persist
// sessions; export the token as QKART_TOKEN or pass --token.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var (
		password string
		register bool
	)

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in (optionally registering first) and print the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}

			c := opts.client()
			if register {
				if err := c.Register(cmd.Context(), args[0], password); err != nil {
					return apiError("register", err)
				}
			}

			res, err := c.Login(cmd.Context(), args[0], password)
			if err != nil {
				return apiError("login", err)
			}

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return writeJSON(out, res)
			}
			_, err = fmt.Fprintf(out, "Logged in as %s (balance %d)\nexport QKART_TOKEN=%s\n", res.Username, res.Balance, res.Token)
			return err
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&register, "register", false, "create the account before logging in")

	return cmd
}

func apiError(op string, err error) error {
	var se *client.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return fmt.Errorf("%s: %s", op, se.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
