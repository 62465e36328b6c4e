package cmd

import (
	"fmt"

	"github.com/abhisek/uplift/internal/api"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print today's motivational quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		client := api.New(api.DefaultConfig(), sess)
		quote, err := client.DailyQuote(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch quote: %w", err)
		}

		fmt.Printf("%q\n", quote.Quote)
		if quote.Mood != "" {
			fmt.Println("matched to your mood:", quote.Mood)
		}
		return nil
	},
}
