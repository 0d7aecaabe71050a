// ABOUTME: CLI commands for accounts and the local session.
// ABOUTME: Supports signup, login, logout, and whoami.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authPassword string

var signupCmd = &cobra.Command{
	Use:   "signup <email> <name>",
	Short: "Create an account and log in",
	Long: `Create an account in this data directory and start a session.

The password is read from --password, or prompted for on stdin.

Examples:
  healthlog signup ann@example.com Ann
  healthlog signup ann@example.com "Ann Lee" --password hunter2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		res, err := authStore.Signup(args[0], password, args[1])
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		if err := authResult(res); err != nil {
			return err
		}

		u := authStore.User()
		color.Green("✓ Signed up as %s", u.Email)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(shortID(u.ID)), u.Name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in",
	Long: `Log in with an existing account. Email matching is exact and case-sensitive.

Examples:
  healthlog login ann@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		res, err := authStore.Login(args[0], password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := authResult(res); err != nil {
			return err
		}

		color.Green("✓ Logged in as %s", authStore.User().Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authStore.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		color.Yellow("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}
		faint := color.New(color.Faint)
		fmt.Printf("%s <%s>\n", u.Name, u.Email)
		fmt.Printf("  %s %s\n", faint.Sprint("id"), u.ID)
		fmt.Printf("  %s %s\n", faint.Sprint("since"), u.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

// authResult turns a business failure into a command error.
func authResult(res auth.Result) error {
	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}

// readPassword returns --password, or reads one from the command's stdin.
// A terminal is read without echo; piped input is read as one line.
func readPassword(cmd *cobra.Command) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	}
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)
}
