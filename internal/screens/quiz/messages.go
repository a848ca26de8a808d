package quiz

import (
	qz "github.com/zoomerslab/hsclab/internal/quiz"
)

// batchLoadedMsg carries a finished Master Bank fetch.
type batchLoadedMsg struct {
	Result qz.BatchResult
}

// attemptSavedMsg reports the history write for a finished quiz.
type attemptSavedMsg struct {
	Err error
}
