package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalChapters = `
chapters:
  Physics:
    1st: ["Vector", "Dynamics"]
    2nd: ["Thermodynamics"]
  ICT: ["Digital Device"]
`

func TestDefaultCatalog(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Len(t, s.Resources(), 43)
	assert.Len(t, s.Quizzes(), 2)

	for _, subj := range Subjects {
		table, ok := s.Chapters(subj)
		require.True(t, ok, "missing chapters for %s", subj)
		assert.Equal(t, subj == SubjectICT, table.IsFlat(), subj)
	}

	for _, q := range s.Quizzes() {
		for _, qq := range q.Questions {
			assert.NoError(t, ValidateQuestion(qq), "quiz %s question %s", q.ID, qq.ID)
		}
	}

	r, ok := s.Resource("i3")
	require.True(t, ok)
	assert.NotEmpty(t, r.Info().Content)
	assert.Equal(t, PaperNone, r.Info().Paper)
}

func TestParseVideoVariant(t *testing.T) {
	doc := minimalChapters + `
resources:
  - id: v1
    title: Vector crash course
    category: Physics
    sub_category: Lit hack
    chapter: Vector
    paper: 1st
    video_id: abc123
  - id: d1
    title: Vector notes
    category: Physics
    sub_category: Formula
    chapter: Vector
    paper: 1st
    date_added: "2024-03-24"
`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)

	rs := s.Resources()
	require.Len(t, rs, 2)

	v, ok := rs[0].(Video)
	require.True(t, ok, "expected Video, got %T", rs[0])
	assert.Equal(t, "abc123", v.VideoID)
	assert.Equal(t, SubCategoryLitHack, v.Info().SubCategory)

	d, ok := rs[1].(Document)
	require.True(t, ok, "expected Document, got %T", rs[1])
	assert.Equal(t, 2024, d.DateAdded.Year())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "three options",
			body: `
quizzes:
  - id: q1
    title: Short quiz
    difficulty: Easy
    subject: ICT
    questions:
      - id: q1-1
        text: Pick one
        options: [a, b, c]
        correct_answer: 0
`,
			want: "options",
		},
		{
			name: "answer out of range",
			body: `
quizzes:
  - id: q1
    title: Bad index
    difficulty: Easy
    subject: ICT
    questions:
      - id: q1-1
        text: Pick one
        options: [a, b, c, d]
        correct_answer: 4
`,
			want: "correct_answer",
		},
		{
			name: "duplicate id",
			body: `
resources:
  - {id: r1, title: One, category: ICT, sub_category: Blog}
  - {id: r1, title: Two, category: ICT, sub_category: Blog}
`,
			want: "duplicate id",
		},
		{
			name: "unknown chapter",
			body: `
resources:
  - {id: r1, title: One, category: Physics, sub_category: Formula, chapter: Optics, paper: 1st}
`,
			want: `chapter "Optics"`,
		},
		{
			name: "paper on ICT",
			body: `
resources:
  - {id: r1, title: One, category: ICT, sub_category: Formula, paper: 2nd}
`,
			want: "ICT has no papers",
		},
		{
			name: "unknown subject",
			body: `
resources:
  - {id: r1, title: One, category: Astronomy, sub_category: Formula}
`,
			want: "known subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(minimalChapters + tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
		})
	}
}

func TestChapterTableChapters(t *testing.T) {
	paperKeyed := ChapterTable{ByPaper: map[Paper][]string{
		PaperFirst:  {"Vector"},
		PaperSecond: {"Thermodynamics"},
	}}
	assert.Equal(t, []string{"Vector"}, paperKeyed.Chapters(PaperNone))
	assert.Equal(t, []string{"Thermodynamics"}, paperKeyed.Chapters(PaperSecond))

	flat := ChapterTable{Flat: []string{"Database"}}
	assert.Equal(t, []string{"Database"}, flat.Chapters(PaperSecond))
	assert.True(t, flat.Has(PaperFirst, "Database"))
}

func TestQuizIsCopied(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	q, ok := s.Quiz("q-hsc-ict")
	require.True(t, ok)
	q.Questions[0].Options[0] = "changed"
	q.Questions = q.Questions[:0]

	again, _ := s.Quiz("q-hsc-ict")
	require.Len(t, again.Questions, 1)
	assert.Equal(t, "AND", again.Questions[0].Options[0])
	assert.Equal(t, 2, again.Questions[0].CorrectAnswer)
}

func TestParseHelpers(t *testing.T) {
	subj, ok := ParseSubject("physics")
	assert.True(t, ok)
	assert.Equal(t, SubjectPhysics, subj)

	_, ok = ParseSubject("All")
	assert.False(t, ok)

	p, ok := ParsePaper("2")
	assert.True(t, ok)
	assert.Equal(t, PaperSecond, p)

	sc, ok := ParseSubCategory("lit hack")
	assert.True(t, ok)
	assert.Equal(t, SubCategoryLitHack, sc)
}
