package catalog

import (
	"strings"
	"time"
)

// Subject is one of the fixed HSC subjects.
type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectBiology   Subject = "Biology"
	SubjectMath      Subject = "Math"
	SubjectBangla    Subject = "Bangla"
	SubjectEnglish   Subject = "English"
	SubjectICT       Subject = "ICT"
)

// Subjects lists every subject in display order.
var Subjects = []Subject{
	SubjectPhysics,
	SubjectChemistry,
	SubjectBiology,
	SubjectMath,
	SubjectBangla,
	SubjectEnglish,
	SubjectICT,
}

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	switch s {
	case SubjectPhysics, SubjectChemistry, SubjectBiology, SubjectMath,
		SubjectBangla, SubjectEnglish, SubjectICT:
		return true
	}
	return false
}

// HasPapers reports whether the subject's curriculum is split into papers.
func (s Subject) HasPapers() bool {
	return s.Valid() && s != SubjectICT
}

// ParseSubject matches a subject name case-insensitively.
func ParseSubject(name string) (Subject, bool) {
	for _, s := range Subjects {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// Paper is a curriculum subdivision. PaperNone means "no paper".
type Paper string

const (
	PaperNone   Paper = ""
	PaperFirst  Paper = "1st"
	PaperSecond Paper = "2nd"
)

// Papers lists the concrete papers in order.
var Papers = []Paper{PaperFirst, PaperSecond}

// Valid reports whether p is a concrete paper.
func (p Paper) Valid() bool {
	return p == PaperFirst || p == PaperSecond
}

// Label returns the paper name, or "N/A" for PaperNone.
func (p Paper) Label() string {
	if p == PaperNone {
		return "N/A"
	}
	return string(p)
}

// ParsePaper accepts "1st", "2nd", "1" or "2". Empty input is PaperNone.
func ParsePaper(s string) (Paper, bool) {
	switch s {
	case "":
		return PaperNone, true
	case "1st", "1":
		return PaperFirst, true
	case "2nd", "2":
		return PaperSecond, true
	}
	return PaperNone, false
}

// SubCategory is the resource-type facet.
type SubCategory string

const (
	SubCategoryFormula SubCategory = "Formula"
	SubCategoryQuiz    SubCategory = "Quiz"
	SubCategoryLitHack SubCategory = "Lit hack"
	SubCategoryBlog    SubCategory = "Blog"
)

// SubCategories lists the sub-categories in display order.
var SubCategories = []SubCategory{
	SubCategoryFormula,
	SubCategoryQuiz,
	SubCategoryLitHack,
	SubCategoryBlog,
}

// Valid reports whether sc is a known sub-category.
func (sc SubCategory) Valid() bool {
	switch sc {
	case SubCategoryFormula, SubCategoryQuiz, SubCategoryLitHack, SubCategoryBlog:
		return true
	}
	return false
}

// ParseSubCategory matches a sub-category name case-insensitively.
func ParseSubCategory(name string) (SubCategory, bool) {
	for _, sc := range SubCategories {
		if strings.EqualFold(string(sc), name) {
			return sc, true
		}
	}
	return "", false
}

// Difficulty grades a quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ResourceInfo holds the fields shared by every resource variant.
type ResourceInfo struct {
	ID          string
	Title       string
	Description string
	Content     string // empty means the text must be generated
	Category    Subject
	SubCategory SubCategory
	Chapter     string
	Paper       Paper
	Link        string
	Tags        []string
	DateAdded   time.Time
}

// Resource is a catalog entry. It is either a Document or a Video.
type Resource interface {
	Info() ResourceInfo
	isResource()
}

// Document is a text resource (formula sheet, blog post, lit hack).
type Document struct {
	ResourceInfo
}

func (d Document) Info() ResourceInfo { return d.ResourceInfo }
func (Document) isResource()          {}

// Video is a resource backed by an external video.
type Video struct {
	ResourceInfo
	VideoID string
}

func (v Video) Info() ResourceInfo { return v.ResourceInfo }
func (Video) isResource()          {}

// Question is a single multiple-choice question.
type Question struct {
	ID            string   `validate:"required"`
	Text          string   `validate:"required"`
	Options       []string `validate:"len=4,dive,required"`
	CorrectAnswer int      `validate:"min=0,max=3"`
	Explanation   string
}

// Quiz is an ordered list of questions. A Master Bank quiz starts empty and
// is filled by generation.
type Quiz struct {
	ID          string
	Title       string
	Description string
	Questions   []Question
	Difficulty  Difficulty
	Subject     Subject
	Chapter     string
	Paper       Paper
	Tags        []string
	MasterBank  bool
}

// Clone returns a copy of q that shares no slices with it.
func (q Quiz) Clone() Quiz {
	out := q
	out.Tags = append([]string(nil), q.Tags...)
	out.Questions = make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		qq.Options = append([]string(nil), qq.Options...)
		out.Questions[i] = qq
	}
	return out
}
