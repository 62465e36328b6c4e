package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/uplift/internal/api"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List campus events, join one, or download a voucher",
	RunE: func(cmd *cobra.Command, args []string) error {
		joinID, _ := cmd.Flags().GetString("join")
		voucherID, _ := cmd.Flags().GetString("voucher")

		if joinID != "" || voucherID != "" {
			st, sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			client := api.New(api.DefaultConfig(), sess)
			ctx := cmd.Context()

			if joinID != "" {
				event, err := client.Participate(ctx, joinID)
				if err != nil {
					return fmt.Errorf("join event: %w", err)
				}
				fmt.Printf("You're in: %s on %s\n", event.Title, event.Date)
			}
			if voucherID != "" {
				data, err := client.DownloadVoucher(ctx, voucherID)
				if err != nil {
					return fmt.Errorf("download voucher: %w", err)
				}
				dir, err := os.UserHomeDir()
				if err != nil {
					dir = "."
				}
				path := filepath.Join(dir, fmt.Sprintf("uplift-voucher-%s.pdf", voucherID))
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("save voucher: %w", err)
				}
				fmt.Println("Voucher saved to", path)
			}
			return nil
		}

		client := api.New(api.DefaultConfig(), nil)
		events, err := client.Events(cmd.Context())
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("Nothing scheduled right now.")
			return nil
		}

		for _, e := range events {
			spots := e.Capacity - len(e.Participants)
			if spots < 0 {
				spots = 0
			}
			fmt.Printf("%-24s  %s  %-30s  %s (%d spots left)\n", e.ID, e.Date, e.Title, e.Location, spots)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().String("join", "", "Event ID to participate in")
	eventsCmd.Flags().String("voucher", "", "Event ID to download the voucher for")
}
