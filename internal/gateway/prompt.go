package gateway

import (
	"fmt"
	"strings"
)

const formulaSystemPrompt = `You write HSC (Higher Secondary Certificate, Bangladesh NCTB) study material.
Write plain text only: headings and bullet points, no Markdown tables, no LaTeX.
Explanations are in Bangla; variables, symbols and units stay in English.`

const quizSystemPrompt = `You are a Bangladesh HSC board examiner writing multiple-choice questions.
Rules:
- Questions follow the NCTB syllabus and board exam standard.
- Question text, options and explanations are in Bangla; formulas and symbols may use English notation.
- Every question has exactly 4 distinct options and exactly one correct option.
- correctAnswer is the zero-based index of the correct option.
- The explanation justifies the correct option in one or two sentences.
- Do not repeat a question within the batch.`

const tutorSystemPrompt = `Strictly an HSC (Higher Secondary Certificate) specialist tutor for Bangladesh.
Focus on MCQ tips, board questions, and core concepts. Language: Bangla default.
If analyzing images, be precise with mathematical formulas and scientific diagrams.`

// defaultImagePrompt stands in for an empty question when only an image is sent.
const defaultImagePrompt = "Please analyze this image."

func buildFormulaMessage(req FormulaRequest) string {
	var b strings.Builder
	b.WriteString("Generate a comprehensive formula sheet for HSC Bangladesh level.\n")
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Chapter: %s\n", req.Chapter)
	fmt.Fprintf(&b, "Paper: %s\n", req.Paper.Label())
	b.WriteString("\nInclude: core formulas, units, and short conceptual notes.\n")
	b.WriteString("Format: headings and bullets, Bangla explanations with English variables, plain text.")
	return b.String()
}

func buildBatchMessage(req BatchRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d Bangla board-standard MCQs.\n", req.Size)
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Paper: %s\n", req.Paper.Label())
	fmt.Fprintf(&b, "Chapter: %s\n", req.Chapter)
	b.WriteString("\nReturn them under \"questions\".")
	return b.String()
}

func buildTutorMessage(prompt string) string {
	q := strings.TrimSpace(prompt)
	if q == "" {
		q = defaultImagePrompt
	}
	return "You are the Zoomer's HSC Lab AI Buddy. Always respond in Bengali (Bangla) unless specifically asked for English. " +
		"You are an expert specifically on the HSC (Higher Secondary Certificate) syllabus of Bangladesh (NCTB). " +
		"Provide short, punchy, board-exam focused answers. " +
		"If an image is provided, analyze it (likely a board question or textbook page) and explain the concept or solve the problem.\n\n" +
		"User Question: " + q
}
