package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"opostudy/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap := stats.NewTracker(st.StatsRepo()).Snapshot()

		fmt.Printf("Answered:   %d\n", snap.TotalAnswered)
		fmt.Printf("Correct:    %d\n", snap.TotalCorrect)
		fmt.Printf("Mistakes:   %d\n", snap.TotalMistakes)
		fmt.Printf("Accuracy:   %d%%\n", snap.AccuracyPercent())
		fmt.Printf("Streak:     %d days\n", snap.StreakDays)
		if snap.LastStudyDate != "" {
			fmt.Printf("Last study: %s\n", snap.LastStudyDate)
		}
		return nil
	},
}
