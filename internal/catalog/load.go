package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

const dateLayout = "2006-01-02"

type catalogFile struct {
	Chapters  map[string]chapterEntry `yaml:"chapters" validate:"required,min=1"`
	Resources []resourceEntry         `yaml:"resources" validate:"dive"`
	Quizzes   []quizEntry             `yaml:"quizzes" validate:"dive"`
}

// chapterEntry decodes either a flat list or a paper-keyed mapping.
type chapterEntry struct {
	Flat    []string
	ByPaper map[string][]string
}

func (c *chapterEntry) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		return n.Decode(&c.Flat)
	case yaml.MappingNode:
		return n.Decode(&c.ByPaper)
	default:
		return fmt.Errorf("line %d: chapters must be a list or a paper mapping", n.Line)
	}
}

type resourceEntry struct {
	ID          string   `yaml:"id" validate:"required"`
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description"`
	Content     string   `yaml:"content"`
	Category    string   `yaml:"category" validate:"subject"`
	SubCategory string   `yaml:"sub_category" validate:"subcategory"`
	Chapter     string   `yaml:"chapter"`
	Paper       string   `yaml:"paper" validate:"paper"`
	Link        string   `yaml:"link"`
	Tags        []string `yaml:"tags"`
	DateAdded   string   `yaml:"date_added" validate:"omitempty,datetime=2006-01-02"`
	VideoID     string   `yaml:"video_id"`
}

type quizEntry struct {
	ID          string          `yaml:"id" validate:"required"`
	Title       string          `yaml:"title" validate:"required"`
	Description string          `yaml:"description"`
	Difficulty  string          `yaml:"difficulty" validate:"difficulty"`
	Subject     string          `yaml:"subject" validate:"subject"`
	Chapter     string          `yaml:"chapter"`
	Paper       string          `yaml:"paper" validate:"paper"`
	Tags        []string        `yaml:"tags"`
	Questions   []questionEntry `yaml:"questions" validate:"required,min=1,dive"`
}

type questionEntry struct {
	ID            string   `yaml:"id" validate:"required"`
	Text          string   `yaml:"text" validate:"required"`
	Options       []string `yaml:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `yaml:"correct_answer" validate:"min=0,max=3"`
	Explanation   string   `yaml:"explanation"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Store, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. All problems found are
// reported together.
func Parse(data []byte) (*Store, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := translate(validate.Struct(f)); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	chapters, err := buildChapters(f.Chapters)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	var errs []error
	seen := make(map[string]bool)

	resources := make([]Resource, 0, len(f.Resources))
	for _, e := range f.Resources {
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("resource %q: duplicate id", e.ID))
		}
		seen[e.ID] = true

		r, err := e.toResource()
		if err != nil {
			errs = append(errs, fmt.Errorf("resource %q: %w", e.ID, err))
			continue
		}
		if err := checkPlacement(chapters, r.Info().Category, r.Info().Paper, r.Info().Chapter); err != nil {
			errs = append(errs, fmt.Errorf("resource %q: %w", e.ID, err))
		}
		resources = append(resources, r)
	}

	quizzes := make([]Quiz, 0, len(f.Quizzes))
	for _, e := range f.Quizzes {
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("quiz %q: duplicate id", e.ID))
		}
		seen[e.ID] = true

		q := e.toQuiz()
		if err := checkPlacement(chapters, q.Subject, q.Paper, q.Chapter); err != nil {
			errs = append(errs, fmt.Errorf("quiz %q: %w", e.ID, err))
		}
		quizzes = append(quizzes, q)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return New(chapters, resources, quizzes), nil
}

func buildChapters(raw map[string]chapterEntry) (map[Subject]ChapterTable, error) {
	out := make(map[Subject]ChapterTable, len(raw))
	for name, e := range raw {
		subj := Subject(name)
		if !subj.Valid() {
			return nil, fmt.Errorf("chapters: unknown subject %q", name)
		}
		if e.ByPaper == nil {
			if subj.HasPapers() {
				return nil, fmt.Errorf("chapters: %s needs 1st and 2nd paper lists", name)
			}
			out[subj] = ChapterTable{Flat: e.Flat}
			continue
		}
		if !subj.HasPapers() {
			return nil, fmt.Errorf("chapters: %s has no papers", name)
		}
		t := ChapterTable{ByPaper: make(map[Paper][]string, len(e.ByPaper))}
		for p, list := range e.ByPaper {
			paper := Paper(p)
			if !paper.Valid() {
				return nil, fmt.Errorf("chapters: %s: unknown paper %q", name, p)
			}
			t.ByPaper[paper] = list
		}
		out[subj] = t
	}
	return out, nil
}

// checkPlacement verifies the chapter exists for the subject and paper.
// An empty chapter is always allowed.
func checkPlacement(chapters map[Subject]ChapterTable, subj Subject, paper Paper, chapter string) error {
	t, ok := chapters[subj]
	if !ok {
		return fmt.Errorf("no chapter table for %s", subj)
	}
	if !subj.HasPapers() && paper != PaperNone {
		return fmt.Errorf("%s has no papers", subj)
	}
	if chapter == "" {
		return nil
	}
	if !t.Has(paper, chapter) {
		return fmt.Errorf("chapter %q not in %s %s", chapter, subj, paper.Label())
	}
	return nil
}

func (e resourceEntry) toResource() (Resource, error) {
	info := ResourceInfo{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Content:     e.Content,
		Category:    Subject(e.Category),
		SubCategory: SubCategory(e.SubCategory),
		Chapter:     e.Chapter,
		Paper:       Paper(e.Paper),
		Link:        e.Link,
		Tags:        e.Tags,
	}
	if e.DateAdded != "" {
		t, err := time.Parse(dateLayout, e.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("date_added: %w", err)
		}
		info.DateAdded = t
	}
	if e.VideoID != "" {
		return Video{ResourceInfo: info, VideoID: e.VideoID}, nil
	}
	return Document{ResourceInfo: info}, nil
}

func (e quizEntry) toQuiz() Quiz {
	q := Quiz{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Difficulty:  Difficulty(e.Difficulty),
		Subject:     Subject(e.Subject),
		Chapter:     e.Chapter,
		Paper:       Paper(e.Paper),
		Tags:        e.Tags,
		Questions:   make([]Question, len(e.Questions)),
	}
	for i, qe := range e.Questions {
		q.Questions[i] = Question{
			ID:            qe.ID,
			Text:          qe.Text,
			Options:       qe.Options,
			CorrectAnswer: qe.CorrectAnswer,
			Explanation:   qe.Explanation,
		}
	}
	return q
}
