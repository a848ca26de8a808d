package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz accuracy per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().Recent(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts yet.")
			return nil
		}

		rows, total := subjectStats(attempts)

		fmt.Printf("%-12s  %8s  %9s  %8s\n", "Subject", "Attempts", "Questions", "Accuracy")
		fmt.Println(strings.Repeat("─", 44))
		for _, r := range rows {
			fmt.Printf("%-12s  %8d  %9d  %7.0f%%\n", r.Subject, r.Attempts, r.Questions, r.Accuracy()*100)
		}
		fmt.Println(strings.Repeat("─", 44))
		fmt.Printf("%-12s  %8d  %9d  %7.0f%%\n", "TOTAL", total.Attempts, total.Questions, total.Accuracy()*100)
		return nil
	},
}

type subjectStat struct {
	Subject   string
	Attempts  int
	Questions int
	Correct   int
}

func (s subjectStat) Accuracy() float64 {
	if s.Questions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Questions)
}

// subjectStats sums attempts per subject, sorted by name. Attempts without
// a subject are grouped under "Other".
func subjectStats(attempts []store.QuizAttempt) ([]subjectStat, subjectStat) {
	by := make(map[string]*subjectStat)
	total := subjectStat{Subject: "TOTAL"}
	for _, a := range attempts {
		key := a.Subject
		if key == "" {
			key = "Other"
		}
		st, ok := by[key]
		if !ok {
			st = &subjectStat{Subject: key}
			by[key] = st
		}
		for _, agg := range []*subjectStat{st, &total} {
			agg.Attempts++
			agg.Questions += a.QuestionCount
			agg.Correct += a.Score
		}
	}

	rows := make([]subjectStat, 0, len(by))
	for _, st := range by {
		rows = append(rows, *st)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Subject < rows[j].Subject })
	return rows, total
}
