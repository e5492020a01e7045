package study

import (
	"github.com/abhisek/recallkit/internal/coach"
	"github.com/abhisek/recallkit/internal/questions"
)

// questionsLoadedMsg is sent when the loader has produced the question list.
type questionsLoadedMsg struct {
	Questions []questions.Question
	Err       error
}

// adviceMsg carries the coach's reply for one question.
type adviceMsg struct {
	QuestionID string
	Advice     *coach.Advice
	Err        error
}
