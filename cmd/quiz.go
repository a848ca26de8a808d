package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/quiz"
	"github.com/zoomerslab/hsclab/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [quiz-id]",
	Short: "Play a quiz in plain text over stdin",
	Long: `Play an authored quiz by ID, or a generated Master Bank quiz with --master
and a subject, paper and chapter.

Answer with a-d or 1-4; an empty line stops the quiz without saving. A
finished attempt is saved to history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().Bool("master", false, "Generate a Master Bank quiz for the selected chapter")
	addSelectionFlags(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	log, closer, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	q, err := pickQuiz(cmd, cat, args)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	s := quiz.New(q, quiz.WithBatchSize(cfg.QuizBatchSize), quiz.WithLogger(log))
	if err := loadBatch(ctx, s, st.EventRepo(), log); err != nil {
		return err
	}

	fmt.Printf("%s · %d questions\n\n", q.Title, s.QuestionCount())
	if err := playQuiz(s, os.Stdin, os.Stdout); err != nil {
		return err
	}

	sum, ok := s.Summary()
	if !ok {
		return nil
	}
	fmt.Printf("── Score: %d/%d (%.0f%%) %s ──\n", sum.Score, sum.QuestionCount, sum.Accuracy*100, sum.Grade)

	if attempt, ok := s.Attempt(); ok {
		repo := st.AttemptRepo()
		if err := repo.Record(ctx, attempt); err != nil {
			return fmt.Errorf("save attempt: %w", err)
		}
		if err := repo.Prune(ctx, cfg.AttemptHistory); err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
	}
	return nil
}

func pickQuiz(cmd *cobra.Command, cat *catalog.Store, args []string) (catalog.Quiz, error) {
	master, _ := cmd.Flags().GetBool("master")
	if !master {
		if len(args) == 0 {
			return catalog.Quiz{}, fmt.Errorf("give a quiz ID or use --master")
		}
		q, ok := cat.Quiz(args[0])
		if !ok {
			return catalog.Quiz{}, fmt.Errorf("quiz %q not found", args[0])
		}
		return q, nil
	}

	sel, err := selectionFromFlags(cmd, cat)
	if err != nil {
		return catalog.Quiz{}, err
	}
	sel.SelectSubCategory(catalog.SubCategoryQuiz)
	q, ok := sel.MasterBankQuiz()
	if !ok {
		return catalog.Quiz{}, fmt.Errorf("--master needs --subject and --chapter")
	}
	return q, nil
}

// loadBatch fetches the Master Bank batch when the session needs one.
func loadBatch(ctx context.Context, s *quiz.Session, eventRepo store.EventRepo, log zerolog.Logger) error {
	ticket, ok := s.BeginBatch()
	if !ok {
		if s.Phase() == quiz.PhaseError {
			return s.Err()
		}
		return nil
	}

	gw, err := newGateway(ctx, eventRepo, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Println("Generating questions...")
	s.Apply(quiz.Fetch(ctx, gw, ticket))
	if s.Phase() == quiz.PhaseError {
		return fmt.Errorf("%s: %w", quiz.LoadFailedMessage, s.Err())
	}
	return nil
}

// playQuiz drives s from text answers until Result or end of input.
func playQuiz(s *quiz.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for s.Phase() == quiz.PhaseActive {
		q, _ := s.Current()
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", s.Index()+1, s.QuestionCount(), q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'a'+i, opt)
		}

		choice := -1
		for choice < 0 {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				fmt.Fprintln(out, "(stopped)")
				return nil
			}
			choice = parseChoice(line, len(q.Options))
			if choice < 0 {
				fmt.Fprintf(out, "Answer with a-%c or 1-%d.\n", 'a'+len(q.Options)-1, len(q.Options))
			}
		}

		s.SelectOption(choice)
		if choice == q.CorrectAnswer {
			fmt.Fprintln(out, "\033[32m✓ সঠিক উত্তর!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ ভুল উত্তর।\033[0m Answer: %c) %s\n", 'a'+q.CorrectAnswer, q.Options[q.CorrectAnswer])
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
		s.Advance()
	}
	return nil
}

// parseChoice accepts a letter or a 1-based number.
func parseChoice(s string, n int) int {
	s = strings.ToLower(s)
	if len(s) != 1 {
		return -1
	}
	c := s[0]
	switch {
	case c >= 'a' && int(c-'a') < n:
		return int(c - 'a')
	case c >= '1' && int(c-'1') < n:
		return int(c - '1')
	}
	return -1
}
