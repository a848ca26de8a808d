package selection

import (
	"strings"

	"github.com/zoomerslab/hsclab/internal/catalog"
)

// AllChapters is the chapter value that disables chapter filtering.
const AllChapters = "All"

// SubjectFilter is either AllSubjects or one concrete catalog subject.
type SubjectFilter string

// AllSubjects disables subject, paper and chapter filtering.
const AllSubjects SubjectFilter = "All"

// Only returns the filter for a single subject.
func Only(s catalog.Subject) SubjectFilter {
	return SubjectFilter(s)
}

// Subject returns the concrete subject, or false for AllSubjects.
func (f SubjectFilter) Subject() (catalog.Subject, bool) {
	if f == AllSubjects {
		return "", false
	}
	return catalog.Subject(f), true
}

// Valid reports whether f is AllSubjects or a known subject.
func (f SubjectFilter) Valid() bool {
	return f == AllSubjects || catalog.Subject(f).Valid()
}

// hasPapers reports whether the paper facet applies under this filter.
func (f SubjectFilter) hasPapers() bool {
	s, ok := f.Subject()
	return ok && s.HasPapers()
}

func (f SubjectFilter) String() string { return string(f) }

// SubjectFilters lists AllSubjects followed by every subject, in display order.
func SubjectFilters() []SubjectFilter {
	out := make([]SubjectFilter, 0, len(catalog.Subjects)+1)
	out = append(out, AllSubjects)
	for _, s := range catalog.Subjects {
		out = append(out, Only(s))
	}
	return out
}

// ParseSubjectFilter accepts "all" or a subject name, case-insensitively.
func ParseSubjectFilter(name string) (SubjectFilter, bool) {
	if strings.EqualFold(name, string(AllSubjects)) {
		return AllSubjects, true
	}
	s, ok := catalog.ParseSubject(name)
	if !ok {
		return "", false
	}
	return Only(s), true
}

// State is the cascading browse filter. The zero value is not ready for use;
// call New.
type State struct {
	subject     SubjectFilter
	paper       catalog.Paper
	chapter     string
	subCategory catalog.SubCategory
	search      string
}

// New returns the initial filter: every subject, formula sheets, no search.
func New() *State {
	return &State{
		subject:     AllSubjects,
		paper:       catalog.PaperNone,
		chapter:     AllChapters,
		subCategory: catalog.SubCategoryFormula,
	}
}

// Subject returns the subject filter.
func (s *State) Subject() SubjectFilter { return s.subject }

// Paper returns the selected paper, PaperNone for subjects without papers.
func (s *State) Paper() catalog.Paper { return s.paper }

// Chapter returns the selected chapter or AllChapters.
func (s *State) Chapter() string { return s.chapter }

// SubCategory returns the selected resource type.
func (s *State) SubCategory() catalog.SubCategory { return s.subCategory }

// Search returns the raw search text.
func (s *State) Search() string { return s.search }

// PaperSelectable reports whether the subject filter has papers to pick.
func (s *State) PaperSelectable() bool { return s.subject.hasPapers() }

// SelectSubject switches subject. Chapter resets to All and sub-category to
// Formula. Paper becomes 1st for subjects with papers and none otherwise.
// Unknown filters are ignored.
func (s *State) SelectSubject(f SubjectFilter) bool {
	if !f.Valid() {
		return false
	}
	s.subject = f
	s.chapter = AllChapters
	s.subCategory = catalog.SubCategoryFormula
	if f.hasPapers() {
		s.paper = catalog.PaperFirst
	} else {
		s.paper = catalog.PaperNone
	}
	return true
}

// SelectPaper switches paper and resets the chapter. It is a no-op when the
// current subject has no papers.
func (s *State) SelectPaper(p catalog.Paper) bool {
	if !s.subject.hasPapers() || !p.Valid() {
		return false
	}
	s.paper = p
	s.chapter = AllChapters
	return true
}

// SelectChapter accepts All or any chapter listed for the current subject
// and paper.
func (s *State) SelectChapter(cat Catalog, c string) bool {
	if c == AllChapters {
		s.chapter = c
		return true
	}
	for _, ch := range ChapterList(cat, s.subject, s.paper) {
		if ch == c {
			s.chapter = c
			return true
		}
	}
	return false
}

// SelectSubCategory switches sub-category without touching other facets.
func (s *State) SelectSubCategory(sc catalog.SubCategory) bool {
	if !sc.Valid() {
		return false
	}
	s.subCategory = sc
	return true
}

// SetSearch replaces the free-text search term.
func (s *State) SetSearch(term string) {
	s.search = term
}
