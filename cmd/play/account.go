package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"spacefun/internal/app"
	"spacefun/internal/models"
)

var (
	loginEmail    string
	loginPassword string

	regName     string
	regAge      int
	regEmail    string
	regPassword string
	regAvatar   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in so your score is saved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		email := promptIfEmpty(cmd.OutOrStdout(), in, "Email", loginEmail)
		password := promptIfEmpty(cmd.OutOrStdout(), in, "Password", loginPassword)

		u, err := current.app.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s! Score: %d\n", u.ChildName, u.Score)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := current.app.Register(cmd.Context(), models.RegisterRequest{
			ChildName: regName,
			ChildAge:  regAge,
			Email:     regEmail,
			Password:  regPassword,
			Avatar:    regAvatar,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome aboard, %s!\n", u.ChildName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in player",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.app.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show score and achievements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if current.app.Online() {
			if _, err := current.app.RefreshUser(cmd.Context()); err != nil && !errors.Is(err, app.ErrNotSignedIn) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Showing saved profile: %v\n", err)
			}
		}
		view, err := current.app.Account()
		if err != nil {
			return err
		}
		writeAccount(cmd.OutOrStdout(), view)
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top players",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := current.app.Leaderboard(cmd.Context())
		if err != nil {
			return err
		}
		writeLeaderboard(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	registerCmd.Flags().StringVar(&regName, "name", "", "child's name")
	registerCmd.Flags().IntVar(&regAge, "age", 0, "child's age (3-12)")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "parent email")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password (at least 6 characters)")
	registerCmd.Flags().StringVar(&regAvatar, "avatar", "astronaut", "avatar name")
	for _, name := range []string{"name", "age", "email", "password"} {
		_ = registerCmd.MarkFlagRequired(name)
	}
}

func promptIfEmpty(out io.Writer, in *bufio.Reader, label, value string) string {
	if value != "" {
		return value
	}
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func writeAccount(w io.Writer, v app.AccountView) {
	fmt.Fprintf(w, "%s  (%s)\n", v.User.ChildName, v.User.Email)
	fmt.Fprintf(w, "Score: %d\n\n", v.User.Score)
	for _, s := range v.Achievements {
		mark := "🔒"
		if s.Unlocked {
			mark = s.Icon
		}
		fmt.Fprintf(w, "%s %-20s %4d  %s\n", mark, s.Title, s.RequiredScore, s.Description)
	}
	if v.Next != nil {
		fmt.Fprintf(w, "\n%d more to reach %s\n", v.Next.RequiredScore-v.User.Score, v.Next.Title)
	}
}

func writeLeaderboard(w io.Writer, rows []app.LeaderboardRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No players yet.")
		return
	}
	for _, r := range rows {
		medal := r.Medal
		if medal == "" {
			medal = "  "
		}
		fmt.Fprintf(w, "%s %2d. %-20s %d\n", medal, r.Rank, r.ChildName, r.Score)
	}
}
