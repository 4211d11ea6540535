package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lead_backend/internal/client"
)

func (a *App) registerCmd() *cobra.Command {
	var name, email, pw string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.password(pw)
			if err != nil {
				return err
			}
			if err := a.auth.Register(cmd.Context(), name, email, p); err != nil {
				return describe(err)
			}
			u := a.auth.State().User
			fmt.Fprintf(a.out, "Registered and signed in as %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&pw, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *App) loginCmd() *cobra.Command {
	var email, pw string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.password(pw)
			if err != nil {
				return err
			}
			if err := a.auth.Login(cmd.Context(), email, p); err != nil {
				return describe(err)
			}
			u := a.auth.State().User
			fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&pw, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session token and forget it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return describe(err)
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		},
	}
}

func (a *App) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Hydrate(cmd.Context()); err != nil {
				return describe(err)
			}
			st := a.auth.State()
			if !st.IsAuthenticated {
				return describe(client.ErrUnauthorized)
			}
			fmt.Fprintf(a.out, "%s <%s>\nid: %s\n", st.User.Name, st.User.Email, st.User.ID)
			return nil
		},
	}
}

// describe turns client errors into messages for the terminal.
func describe(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		msg := apiErr.Message
		for _, f := range apiErr.Fields {
			msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Message)
		}
		return errors.New(msg)
	case errors.Is(err, client.ErrUnauthorized):
		if apiErr != nil && apiErr.Message != "" && apiErr.Message != "Not authorized to access this route" {
			return errors.New(apiErr.Message)
		}
		return errors.New("not signed in, run `leadctl login`")
	}
	return err
}
