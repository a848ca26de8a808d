package catalog

// ChapterTable lists a subject's chapters. Either Flat is set (subjects
// without papers) or ByPaper is.
type ChapterTable struct {
	Flat    []string
	ByPaper map[Paper][]string
}

// IsFlat reports whether the table ignores papers.
func (t ChapterTable) IsFlat() bool {
	return t.ByPaper == nil
}

// Chapters returns the chapters for paper p. Paper-keyed tables fall back
// to the first paper when p is PaperNone.
func (t ChapterTable) Chapters(p Paper) []string {
	if t.IsFlat() {
		return t.Flat
	}
	if p == PaperNone {
		p = PaperFirst
	}
	return t.ByPaper[p]
}

// Has reports whether chapter c appears in the table for paper p.
func (t ChapterTable) Has(p Paper, c string) bool {
	for _, ch := range t.Chapters(p) {
		if ch == c {
			return true
		}
	}
	return false
}

// Store is the read-only catalog dataset. It is safe for concurrent reads.
type Store struct {
	chapters  map[Subject]ChapterTable
	resources []Resource
	quizzes   []Quiz

	resourceIdx map[string]int
	quizIdx     map[string]int
}

// New builds a Store from already-validated data. Order of resources and
// quizzes is preserved.
func New(chapters map[Subject]ChapterTable, resources []Resource, quizzes []Quiz) *Store {
	s := &Store{
		chapters:    make(map[Subject]ChapterTable, len(chapters)),
		resources:   append([]Resource(nil), resources...),
		quizzes:     make([]Quiz, len(quizzes)),
		resourceIdx: make(map[string]int, len(resources)),
		quizIdx:     make(map[string]int, len(quizzes)),
	}
	for subj, t := range chapters {
		s.chapters[subj] = t
	}
	for i, r := range s.resources {
		s.resourceIdx[r.Info().ID] = i
	}
	for i, q := range quizzes {
		s.quizzes[i] = q.Clone()
		s.quizIdx[q.ID] = i
	}
	return s
}

// Chapters returns the chapter table for a subject.
func (s *Store) Chapters(subject Subject) (ChapterTable, bool) {
	t, ok := s.chapters[subject]
	return t, ok
}

// Resources returns all resources in catalog order.
func (s *Store) Resources() []Resource {
	return append([]Resource(nil), s.resources...)
}

// Quizzes returns copies of all authored quizzes in catalog order.
func (s *Store) Quizzes() []Quiz {
	out := make([]Quiz, len(s.quizzes))
	for i, q := range s.quizzes {
		out[i] = q.Clone()
	}
	return out
}

// Resource looks up a resource by ID.
func (s *Store) Resource(id string) (Resource, bool) {
	i, ok := s.resourceIdx[id]
	if !ok {
		return nil, false
	}
	return s.resources[i], true
}

// Quiz looks up an authored quiz by ID.
func (s *Store) Quiz(id string) (Quiz, bool) {
	i, ok := s.quizIdx[id]
	if !ok {
		return Quiz{}, false
	}
	return s.quizzes[i].Clone(), true
}
