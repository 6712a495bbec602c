package service

import "github.com/quizace/quizace-backend/internal/model"

// Default point values per question type. Subjective questions are always
// worth the fixed default; objective questions fall back to it only when no
// score was declared.
const (
	ObjectiveDefaultScore  = 10
	SubjectiveDefaultScore = 20
)

// Default paper sizes and duration applied when a request omits them.
const (
	DefaultObjectiveSize   = 10
	DefaultSubjectiveSize  = 5
	DefaultDurationSeconds = 1800
)

// ResolveScore maps (question type, declared score) onto an effective point
// value.
func ResolveScore(questionType string, declared int) int {
	if questionType == model.QuestionTypeSubjective {
		return SubjectiveDefaultScore
	}
	if declared > 0 {
		return declared
	}
	return ObjectiveDefaultScore
}

// DefaultPaperSize returns the question count used when the caller does not
// ask for a specific size.
func DefaultPaperSize(questionType string) int {
	if questionType == model.QuestionTypeSubjective {
		return DefaultSubjectiveSize
	}
	return DefaultObjectiveSize
}

// itemMaxScore is the item's frozen creation-time score; rows predating the
// snapshot column fall back to resolving from the live question.
func itemMaxScore(item *model.PracticeAttemptItem) int {
	if item.ExpectedScore > 0 {
		return item.ExpectedScore
	}
	return ResolveScore(item.Question.QuestionType, item.Question.Score)
}
