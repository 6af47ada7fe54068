package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"opostudy/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored study data",
	RunE: func(cmd *cobra.Command, args []string) error {
		resetStats, _ := cmd.Flags().GetBool("stats")
		resetMistakes, _ := cmd.Flags().GetBool("mistakes")
		resetPracticals, _ := cmd.Flags().GetBool("practicals")
		resetAll, _ := cmd.Flags().GetBool("all")

		if resetAll {
			resetStats, resetMistakes, resetPracticals = true, true, true
		}
		if !resetStats && !resetMistakes && !resetPracticals {
			return fmt.Errorf("nothing selected: pass --stats, --mistakes, --practicals or --all")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if resetStats {
			if err := st.DeleteDocument(store.KeyStats); err != nil {
				return err
			}
			fmt.Println("Stats cleared.")
		}
		if resetMistakes {
			if err := st.DeleteDocument(store.KeyMistakes); err != nil {
				return err
			}
			fmt.Println("Mistake ledger cleared.")
		}
		if resetPracticals {
			if err := st.DeleteDocument(store.KeyPracticals); err != nil {
				return err
			}
			fmt.Println("Practical answers cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("stats", false, "Clear the stats snapshot")
	resetCmd.Flags().Bool("mistakes", false, "Clear the mistake ledger")
	resetCmd.Flags().Bool("practicals", false, "Clear saved practical answers")
	resetCmd.Flags().Bool("all", false, "Clear everything")
}
