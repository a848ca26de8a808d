package selection

import (
	"fmt"
	"strings"

	"github.com/zoomerslab/hsclab/internal/catalog"
)

// Catalog is the read-only view of the dataset that filtering needs.
type Catalog interface {
	Chapters(subject catalog.Subject) (catalog.ChapterTable, bool)
	Resources() []catalog.Resource
	Quizzes() []catalog.Quiz
}

// ChapterList returns the chapter choices for a subject and paper, led by
// All. It is empty for AllSubjects and for a subject with no chapter table.
func ChapterList(cat Catalog, f SubjectFilter, p catalog.Paper) []string {
	subj, ok := f.Subject()
	if !ok {
		return nil
	}
	table, ok := cat.Chapters(subj)
	if !ok {
		return nil
	}
	chapters := table.Chapters(p)
	out := make([]string, 0, len(chapters)+1)
	out = append(out, AllChapters)
	return append(out, chapters...)
}

// FilterResources returns the resources matching st, in catalog order.
func FilterResources(cat Catalog, st *State) []catalog.Resource {
	var out []catalog.Resource
	for _, r := range cat.Resources() {
		info := r.Info()
		if info.SubCategory != st.subCategory {
			continue
		}
		if !st.matches(info.Title, info.Tags, info.Category, info.Paper, info.Chapter) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterQuizzes returns the authored quizzes matching st, in catalog order.
// Quizzes are only listed under the Quiz sub-category.
func FilterQuizzes(cat Catalog, st *State) []catalog.Quiz {
	if st.subCategory != catalog.SubCategoryQuiz {
		return nil
	}
	var out []catalog.Quiz
	for _, q := range cat.Quizzes() {
		if st.matches(q.Title, q.Tags, q.Subject, q.Paper, q.Chapter) {
			out = append(out, q)
		}
	}
	return out
}

func (s *State) matches(title string, tags []string, subject catalog.Subject, paper catalog.Paper, chapter string) bool {
	if !matchesSearch(title, tags, s.search) {
		return false
	}
	selected, ok := s.subject.Subject()
	if !ok {
		return true
	}
	if subject != selected {
		return false
	}
	if selected.HasPapers() && s.paper != catalog.PaperNone && paper != s.paper {
		return false
	}
	if s.chapter != AllChapters && chapter != s.chapter {
		return false
	}
	return true
}

func matchesSearch(title string, tags []string, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(title), needle) {
		return true
	}
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// MasterBankAvailable reports whether the current filter can launch a Master
// Bank quiz: a concrete subject and chapter under the Quiz sub-category.
func (s *State) MasterBankAvailable() bool {
	_, ok := s.subject.Subject()
	return ok && s.chapter != AllChapters && s.subCategory == catalog.SubCategoryQuiz
}

// MasterBankQuiz builds an empty Master Bank quiz for the selected subject,
// paper and chapter. It fails when subject or chapter is All.
func (s *State) MasterBankQuiz() (catalog.Quiz, bool) {
	subj, ok := s.subject.Subject()
	if !ok || s.chapter == AllChapters {
		return catalog.Quiz{}, false
	}
	paperKey := string(s.paper)
	if s.paper == catalog.PaperNone {
		paperKey = "na"
	}
	return catalog.Quiz{
		ID:          fmt.Sprintf("master-%s-%s-%s", subj, s.chapter, paperKey),
		Title:       fmt.Sprintf("%s - 200+ MCQ Master Bank", s.chapter),
		Description: fmt.Sprintf("অধ্যায়: %s। এখানে বোর্ড স্ট্যান্ডার্ড ২০০+ এমসিকিউ প্র্যাকটিস করতে পারবে AI এর সাহায্যে।", s.chapter),
		Difficulty:  catalog.DifficultyHard,
		Subject:     subj,
		Chapter:     s.chapter,
		Paper:       s.paper,
		Tags:        []string{string(subj), s.chapter, "MasterBank"},
		MasterBank:  true,
	}, true
}
