package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/quiz"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts yet.")
			return nil
		}

		fmt.Printf("%-16s  %-40s  %-7s  %5s  %s\n", "Finished", "Quiz", "Score", "Acc", "Grade")
		fmt.Println(strings.Repeat("─", 86))
		for _, a := range attempts {
			title := a.Title
			if a.MasterBank {
				title = "★ " + title
			}
			fmt.Printf("%-16s  %-40s  %3d/%-3d  %4.0f%%  %s\n",
				a.FinishedAt.Local().Format("2006-01-02 15:04"),
				truncate(title, 40),
				a.Score, a.QuestionCount,
				a.Accuracy()*100,
				quiz.Grade(a.Accuracy()),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
