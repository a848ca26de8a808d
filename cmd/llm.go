package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/llm"
	"github.com/zoomerslab/hsclab/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged AI requests: formula sheets, quiz batches, tutor answers",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			kept := events[:0]
			for _, e := range events {
				if !e.Success {
					kept = append(kept, e)
				}
			}
			events = kept
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No AI requests logged.")
			return nil
		}

		fmt.Fprintf(w, "%-5s  %-16s  %-13s  %-28s  %6s  %6s  %6s  %s\n",
			"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "Result")
		fmt.Fprintln(w, strings.Repeat("─", 104))
		for _, e := range events {
			result := "ok"
			if !e.Success {
				result = truncate(e.ErrorMessage, 24)
			}
			fmt.Fprintf(w, "%-5d  %-16s  %-13s  %-28s  %6d  %6d  %6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens, e.OutputTokens, e.LatencyMs,
				result,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one AI request with its prompt and reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}
		replyOnly, _ := cmd.Flags().GetBool("response")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("request %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		w := cmd.OutOrStdout()
		if replyOnly {
			fmt.Fprintln(w, e.ResponseBody)
			return nil
		}
		printEvent(w, e)
		return nil
	},
}

func printEvent(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s (%s)\n", e.Provider, e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ name, body string }{
		{"PROMPT", e.RequestBody},
		{"REPLY", e.ResponseBody},
	} {
		fmt.Fprintf(w, "\n── %s %s\n", part.name, strings.Repeat("─", 56-len(part.name)))
		if part.body == "" {
			fmt.Fprintln(w, "(empty)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(w, "No AI usage recorded yet.")
			return nil
		}

		rule := strings.Repeat("─", 72)
		fmt.Fprintln(w, "Usage by purpose")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
		var calls, in, out int
		for _, u := range byPurpose {
			fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		rows, total, unknown := modelCosts(byModel)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Estimated cost (USD)")
		fmt.Fprintln(w, rule)
		for _, r := range rows {
			cost := "?"
			if r.known {
				cost = formatCost(r.usd)
			}
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(r.model, 32), r.calls, r.in, r.out, cost)
		}
		fmt.Fprintln(w, rule)
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(w, "%-32s  %30s  %10s\n", label, "", formatCost(total))
		if len(unknown) > 0 {
			fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

type costRow struct {
	model   string
	calls   int
	in, out int
	usd     float64
	known   bool
}

// modelCosts prices each model's usage. Models without a price table are
// listed in unknown and left out of total.
func modelCosts(usage []store.LLMUsage) (rows []costRow, total float64, unknown []string) {
	for _, u := range usage {
		r := costRow{model: u.Model, calls: u.Calls, in: u.InputTokens, out: u.OutputTokens}
		if c := llm.LookupCost(u.Model); c != nil {
			r.usd = c.Cost(u.InputTokens, u.OutputTokens)
			r.known = true
			total += r.usd
		} else {
			unknown = append(unknown, u.Model)
		}
		rows = append(rows, r)
	}
	return rows, total, unknown
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only this purpose (formula-sheet, quiz-batch, tutor)")
	llmListCmd.Flags().Bool("failed", false, "Only failed requests")
	llmViewCmd.Flags().Bool("response", false, "Print only the raw reply")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
