package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libdesk/internal/prefs"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/util"
)

func newLoginCmd() *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the library",
		Long: `Sign in and keep the session for later commands.

Without --email you are asked for it, defaulting to the last address used.
The password is read without echo, or from stdin with --password-stdin.`,
		Example: `  libdesk login
  libdesk login --email ana@example.com
  echo "$PASSWORD" | libdesk login --email ana@example.com --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				p, _ := prefs.Load(cfg.PrefsPath)
				prompt := "Email: "
				if p.LastEmail != "" {
					prompt = fmt.Sprintf("Email [%s]: ", p.LastEmail)
				}
				line, err := util.ReadLine(prompt, stdin, stdout)
				if err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
				email = line
				if email == "" {
					email = p.LastEmail
				}
			}

			password, err := readPassword("Password: ", passwordStdin)
			if err != nil {
				return err
			}

			sess, err := svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := prefs.Remember(cfg.PrefsPath, sess.Email); err != nil {
				warn("Could not save preferences: %v", err)
			}

			if flagJSON {
				return printJSON(publicSession(sess))
			}
			ok("Signed in as %s (%s)", sess.Name, sess.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var (
		name          string
		email         string
		role          string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a library account and sign in",
		Example: `  libdesk register --name "Ana Lima" --email ana@example.com
  libdesk register --name Bo --email bo@example.com --role librarian`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := session.Registration{
				Name:  name,
				Email: email,
				Role:  session.Role(strings.ToLower(role)),
			}

			password, err := readPassword("Password: ", passwordStdin)
			if err != nil {
				return err
			}
			reg.Password = password
			reg.PasswordConfirmation = password
			if !passwordStdin {
				confirmation, err := readPassword("Confirm password: ", false)
				if err != nil {
					return err
				}
				reg.PasswordConfirmation = confirmation
			}

			sess, err := svc.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			if err := prefs.Remember(cfg.PrefsPath, sess.Email); err != nil {
				warn("Could not save preferences: %v", err)
			}

			if flagJSON {
				return printJSON(publicSession(sess))
			}
			ok("Registered and signed in as %s (%s)", sess.Name, sess.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&role, "role", string(session.RoleMember), "Account role: member or librarian")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, loggedIn := svc.Store().Session(); !loggedIn {
				fmt.Fprintln(stdout, "Not signed in")
				return nil
			}
			if err := svc.Logout(cmd.Context()); err != nil {
				warn("Server did not confirm logout: %v", err)
			}
			ok("Signed out")
			return nil
		},
	}
}

func newWhoAmICmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := svc.WhoAmI(cmd.Context(), remote)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(publicSession(sess))
			}

			header("Account")
			printField("Name", sess.Name)
			printField("Email", sess.Email)
			printField("Role", string(sess.Role))
			printField("User ID", sess.ID)
			if exp, ok := sess.TokenExpiry(); ok {
				value := exp.Local().Format(time.RFC1123)
				if time.Now().After(exp) {
					value += " (expired)"
				}
				printField("Token expires", value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the server instead of using the stored session")
	return cmd
}

// readPassword reads from stdin when fromStdin is set, and prompts
// otherwise.
func readPassword(prompt string, fromStdin bool) (string, error) {
	var (
		password string
		err      error
	)
	if fromStdin {
		password, err = util.ReadLine("", stdin, stdout)
	} else {
		password, err = util.ReadSecret(prompt, stdin, stdout)
	}
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

type sessionView struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  session.Role `json:"role"`
}

// publicSession drops the token from JSON output.
func publicSession(s session.Session) sessionView {
	return sessionView{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role}
}
