package cmd

import (
	"fmt"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/app"
	"github.com/spf13/cobra"
)

// runAppAt launches the TUI on a specific screen. All of these need a
// signed-in session.
func runAppAt(cmd *cobra.Command, start app.StartScreen) error {
	st, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if !sess.Authenticated() {
		return fmt.Errorf("not signed in; run: uplift login")
	}

	client := api.New(api.DefaultConfig(), sess)
	return app.Run(app.Options{
		Session: sess,
		Client:  client,
		Start:   start,
	})
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take (or retake) the motivation assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAppAt(cmd, app.StartAssessment)
	},
}

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Check your mood history and detect from a photo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAppAt(cmd, app.StartMood)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan for your next exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAppAt(cmd, app.StartPlanner)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAppAt(cmd, app.StartProfile)
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(profileCmd)
}
