package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/session"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		client := api.New(api.DefaultConfig(), sess)

		if idToken, _ := cmd.Flags().GetString("google-id-token"); idToken != "" {
			return googleLogin(ctx, client, sess, idToken)
		}

		email, _ := cmd.Flags().GetString("email")
		reader := bufio.NewReader(os.Stdin)

		if email == "" {
			fmt.Print("Email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password := strings.TrimSpace(line)

		resp, err := client.Login(ctx, api.Credentials{Email: email, Password: password})
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}

		user := session.User{ID: resp.UserID, Email: email}
		if err := sess.SignIn(ctx, resp.AccessToken, user); err != nil {
			return err
		}
		if details, err := client.UserDetails(ctx); err == nil {
			user.Name = details.Name
			_ = sess.UpdateUser(ctx, user)
		}

		fmt.Println("Signed in as", email)
		if sess.NeedsAssessment() {
			fmt.Println("You still owe the first-time assessment. Run: uplift")
		}
		return nil
	},
}

// googleLogin exchanges a Google ID token for backend tokens and stores
// both, so requests fall back to the ID token if the backend never
// issued an access token.
func googleLogin(ctx context.Context, client *api.Client, sess *session.Store, idToken string) error {
	resp, err := client.GoogleSignIn(ctx, idToken)
	if err != nil {
		return fmt.Errorf("google sign in: %w", err)
	}

	user := session.User{ID: resp.UserID}
	if err := sess.SignInWithGoogle(ctx, idToken, resp.AccessToken, user); err != nil {
		return err
	}
	if details, err := client.UserDetails(ctx); err == nil {
		user.Name = details.Name
		user.Email = details.Email
		_ = sess.UpdateUser(ctx, user)
	}

	fmt.Println("Signed in with Google.")
	if sess.NeedsAssessment() {
		fmt.Println("You still owe the first-time assessment. Run: uplift")
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := sess.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if !sess.Authenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		user := sess.CurrentUser()
		if user == nil {
			fmt.Println("Signed in (no cached profile).")
			return nil
		}

		fmt.Printf("%s <%s>\n", user.Name, user.Email)

		score, message, ok, err := sess.AssessmentResult(cmd.Context())
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("Assessment: %s (score %d)\n", message, score)
		} else if sess.NeedsAssessment() {
			fmt.Println("Assessment: not taken yet")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email (prompted if omitted)")
	loginCmd.Flags().String("google-id-token", "", "Sign in with a Google ID token instead of credentials")
}
