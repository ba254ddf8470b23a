package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/worklog/internal/ports/primary"
)

// PasswordEnv is read when --password is omitted.
const PasswordEnv = "WORKLOG_PASSWORD"

// AuthCmd groups account commands.
func AuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage your account",
	}

	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			username, _ := cmd.Flags().GetString("username")
			fullName, _ := cmd.Flags().GetString("full-name")
			password, err := passwordFlag(cmd)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			req := primary.SignupRequest{Email: email, Username: username, Password: password}
			if cmd.Flags().Changed("full-name") {
				req.FullName = &fullName
			}
			_, err = s.container.AuthAdapter(cmd.OutOrStdout()).Signup(s.ctx, req)
			return err
		},
	}
	signupCmd.Flags().String("email", "", "Email address")
	signupCmd.Flags().String("username", "", "Username")
	signupCmd.Flags().String("full-name", "", "Full name")
	signupCmd.Flags().String("password", "", "Password (default: $"+PasswordEnv+")")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("username")

	loginCmd := &cobra.Command{
		Use:   "login [email-or-username]",
		Short: "Log in and print an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordFlag(cmd)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = s.container.AuthAdapter(cmd.OutOrStdout()).Login(s.ctx, primary.LoginRequest{
				Email:    args[0],
				Password: password,
			})
			return err
		},
	}
	loginCmd.Flags().String("password", "", "Password (default: $"+PasswordEnv+")")

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, ownerID, err := s.authenticate(cmd)
			if err != nil {
				return err
			}
			_, err = s.container.AuthAdapter(cmd.OutOrStdout()).Me(ctx, ownerID)
			return err
		},
	}
	addTokenFlag(meCmd)

	authCmd.AddCommand(signupCmd, loginCmd, meCmd)
	return authCmd
}

func passwordFlag(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if password == "" {
		return "", errors.New("password is required (use --password or " + PasswordEnv + ")")
	}
	return password, nil
}
