package cmd

import (
	"fmt"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/app"
	"github.com/abhisek/uplift/internal/session"
	"github.com/abhisek/uplift/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, derives the session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	client := api.New(api.DefaultConfig(), sess)

	return app.Run(app.Options{
		Session: sess,
		Client:  client,
	})
}

// openSession opens the local store and derives session state from it.
// The caller owns closing the store.
func openSession(cmd *cobra.Command) (*store.Store, *session.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	sess, err := session.New(cmd.Context(), st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, sess, nil
}
