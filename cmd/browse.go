package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/selection"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List catalog entries for a subject, paper, chapter and type",
	Long: `List catalog entries the way the browser screen filters them.

Choosing a subject resets paper and chapter, so --paper and --chapter are
applied after --subject. Chapters are listed with --chapters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd, config.Load())
		if err != nil {
			return err
		}

		st, err := selectionFromFlags(cmd, cat)
		if err != nil {
			return err
		}

		if list, _ := cmd.Flags().GetBool("chapters"); list {
			if _, ok := st.Subject().Subject(); !ok {
				return fmt.Errorf("pick a subject to list its chapters")
			}
			chapters := selection.ChapterList(cat, st.Subject(), st.Paper())
			if len(chapters) == 0 {
				fmt.Println("No chapters listed for this subject.")
				return nil
			}
			for _, c := range chapters[1:] {
				fmt.Println(c)
			}
			return nil
		}

		if q, ok := st.MasterBankQuiz(); ok && st.MasterBankAvailable() {
			fmt.Printf("★ %s\n  hsclab quiz --master --subject %s --paper %q --chapter %q\n\n",
				q.Title, q.Subject, q.Paper, q.Chapter)
		}

		quizzes := selection.FilterQuizzes(cat, st)
		resources := selection.FilterResources(cat, st)

		fmt.Printf("%-6s  %-44s  %-9s  %-5s  %s\n", "ID", "Title", "Subject", "Paper", "Chapter")
		fmt.Println(strings.Repeat("─", 100))
		for _, q := range quizzes {
			fmt.Printf("%-6s  %-44s  %-9s  %-5s  %s\n",
				q.ID, truncate(q.Title, 44), q.Subject, q.Paper.Label(), q.Chapter)
		}
		for _, r := range resources {
			info := r.Info()
			fmt.Printf("%-6s  %-44s  %-9s  %-5s  %s\n",
				info.ID, truncate(info.Title, 44), info.Category, info.Paper.Label(), info.Chapter)
		}

		fmt.Printf("\n%d %s entries\n", len(quizzes)+len(resources), st.SubCategory())
		return nil
	},
}

func init() {
	addSelectionFlags(browseCmd)
	browseCmd.Flags().String("type", string(catalog.SubCategoryFormula), "Formula, Quiz, Lit hack or Blog")
	browseCmd.Flags().String("search", "", "Match titles and tags (case-insensitive)")
	browseCmd.Flags().Bool("chapters", false, "List the chapters for --subject and --paper instead")
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("subject", "all", "Subject name or \"all\"")
	cmd.Flags().String("paper", "", "1st or 2nd (subjects with papers only)")
	cmd.Flags().String("chapter", selection.AllChapters, "Chapter name")
}

// selectionFromFlags replays the flags through a selection.State so the CLI
// gets the same cascading rules as the browser.
func selectionFromFlags(cmd *cobra.Command, cat *catalog.Store) (*selection.State, error) {
	subject, _ := cmd.Flags().GetString("subject")
	paper, _ := cmd.Flags().GetString("paper")
	chapter, _ := cmd.Flags().GetString("chapter")

	st := selection.New()

	f, ok := selection.ParseSubjectFilter(subject)
	if !ok {
		return nil, fmt.Errorf("unknown subject %q", subject)
	}
	st.SelectSubject(f)

	if paper != "" {
		p, ok := catalog.ParsePaper(paper)
		if !ok || !st.SelectPaper(p) {
			return nil, fmt.Errorf("paper %q does not apply to %s", paper, f)
		}
	}
	if chapter != "" && !st.SelectChapter(cat, chapter) {
		return nil, fmt.Errorf("unknown chapter %q for %s %s", chapter, f, st.Paper().Label())
	}

	if cmd.Flags().Lookup("type") != nil {
		typ, _ := cmd.Flags().GetString("type")
		sc, ok := catalog.ParseSubCategory(typ)
		if !ok {
			return nil, fmt.Errorf("unknown type %q", typ)
		}
		st.SelectSubCategory(sc)
	}
	if cmd.Flags().Lookup("search") != nil {
		search, _ := cmd.Flags().GetString("search")
		st.SetSearch(search)
	}
	return st, nil
}
