package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
)

// DTO assembly shared across the attempt-facing services.

func attemptToResponse(attempt *model.PracticeAttempt) dto.AttemptResponse {
	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	if attempt.Subject.ID != 0 {
		resp.SubjectName = attempt.Subject.Name
	}
	if attempt.Assignment != nil {
		resp.AssignmentTitle = attempt.Assignment.Title
	}
	if attempt.User.ID != 0 {
		resp.UserName = attempt.User.Username
	}
	return resp
}

// itemsToResponses renders attempt items, applying the solution visibility
// policy per item unless forceSolutions is set (teacher review views).
func itemsToResponses(attempt *model.PracticeAttempt, items []model.PracticeAttemptItem, wrongIDs map[uint]struct{}, forceSolutions bool) []dto.AttemptItemResponse {
	responses := make([]dto.AttemptItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		question := &item.Question

		view := dto.AttemptQuestionView{
			ID:           question.ID,
			QuestionType: question.QuestionType,
			Content:      question.Content,
			Options:      question.Options,
			Score:        itemMaxScore(item),
			SubjectName:  question.Subject.Name,
			MediaURL:     question.MediaURL,
		}
		if forceSolutions || SolutionVisible(attempt.Status, attempt.IsReviewRequired, question.QuestionType) {
			answer := question.Answer
			analysis := question.Analysis
			view.Answer = &answer
			view.Analysis = &analysis
		}

		_, inWrongBook := wrongIDs[item.QuestionID]
		responses = append(responses, dto.AttemptItemResponse{
			ID:            item.ID,
			Order:         item.Order,
			Question:      view,
			UserAnswer:    item.UserAnswer,
			IsCorrect:     item.IsCorrect,
			AwardedScore:  item.AwardedScore,
			ExpectedScore: itemMaxScore(item),
			InWrongBook:   inWrongBook,
		})
	}
	return responses
}

func pendingReviewToResponse(attempt *model.PracticeAttempt) dto.PendingReviewAttemptResponse {
	resp := dto.PendingReviewAttemptResponse{
		ID:             attempt.ID,
		StudentID:      attempt.UserID,
		SubjectID:      attempt.SubjectID,
		AssignmentID:   attempt.AssignmentID,
		SubmittedAt:    attempt.SubmittedAt,
		Status:         attempt.Status,
		Mode:           attempt.Mode,
		QuestionType:   attempt.QuestionType,
		TotalQuestions: attempt.TotalQuestions,
	}
	if attempt.User.ID != 0 {
		resp.StudentName = attempt.User.Username
	}
	if attempt.Subject.ID != 0 {
		resp.SubjectName = attempt.Subject.Name
	}
	if attempt.Assignment != nil {
		resp.AssignmentTitle = attempt.Assignment.Title
	}
	return resp
}

func itemQuestionIDs(items []model.PracticeAttemptItem) []uint {
	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].QuestionID)
	}
	return ids
}

// questionsToPaperPayload renders freshly drawn questions for a starting
// attempt: sequential order, effective score, no solution fields.
func questionsToPaperPayload(questions []model.Question, items []model.PracticeAttemptItem) []dto.PracticeQuestionResponse {
	payload := make([]dto.PracticeQuestionResponse, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		payload = append(payload, dto.PracticeQuestionResponse{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			Content:      q.Content,
			Options:      q.Options,
			Score:        items[i].ExpectedScore,
			Order:        items[i].Order,
			SubjectName:  q.Subject.Name,
			MediaURL:     q.MediaURL,
		})
	}
	return payload
}

func questionToResponse(q *model.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:           q.ID,
		SubjectID:    q.SubjectID,
		SubjectName:  q.Subject.Name,
		QuestionType: q.QuestionType,
		Status:       q.Status,
		Content:      q.Content,
		Options:      q.Options,
		Answer:       q.Answer,
		Analysis:     q.Analysis,
		Score:        q.Score,
		MediaURL:     q.MediaURL,
		CreatedAt:    q.CreatedAt,
	}
}

func subjectToResponse(s *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{ID: s.ID, Name: s.Name, Description: s.Description}
}

func assignmentToResponse(a *model.ExamAssignment, now time.Time) dto.AssignmentResponse {
	var resp dto.AssignmentResponse
	copier.Copy(&resp, a)
	resp.Phase = a.Phase(now)
	resp.QuestionIDs = a.QuestionIDs
	if a.Subject.ID != 0 {
		resp.SubjectName = a.Subject.Name
	}
	if a.CreatedBy.ID != 0 {
		resp.CreatedByName = a.CreatedBy.Username
	}
	return resp
}
