package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"opostudy/internal/config"
	"opostudy/internal/mistakes"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "List the pending mistake queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		showAll, _ := cmd.Flags().GetBool("all")
		blockFlag, _ := cmd.Flags().GetInt("block")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		cfg := config.FromEnv()
		ledger := mistakes.NewLedger(st.MistakesRepo(), cfg.LookbackDays)

		var records []mistakes.Record
		if showAll {
			records = ledger.All()
		} else {
			var block *int
			if blockFlag > 0 {
				block = &blockFlag
			}
			records = ledger.Pending(block, time.Now())
		}

		if len(records) == 0 {
			fmt.Println("No mistakes on record. Nice.")
			return nil
		}

		fmt.Printf("%-38s %-6s %-20s %-6s %s\n", "ID", "BLOCK", "TOPIC", "WRONG", "STATUS")
		for _, r := range records {
			status := "pending"
			if r.Resolved() {
				status = "resolved"
			}
			fmt.Printf("%-38s %-6d %-20s %-6d %s\n", r.ID, r.Block, truncateTopic(r.Topic), r.WrongCount, status)
		}
		return nil
	},
}

func truncateTopic(topic string) string {
	if len(topic) <= 20 {
		return topic
	}
	return topic[:17] + "..."
}

func init() {
	mistakesCmd.Flags().Bool("all", false, "Include resolved and expired entries")
	mistakesCmd.Flags().Int("block", 0, "Only show mistakes from one block")
}
