package service

import (
	"errors"

	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionService covers question authoring and the untimed browse flow
// that hands out questions with their solutions for self-study.
type QuestionService interface {
	Create(creator *model.User, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	Update(editor *model.User, questionID uint, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	Get(questionID uint) (*dto.QuestionResponse, error)
	// BrowseRandom draws questions like an attempt would, but without
	// creating one; solutions are included.
	BrowseRandom(subjectID uint, questionType string, size int) ([]dto.QuestionResponse, error)
}

type questionService struct {
	subjectRepo  repository.SubjectRepository
	questionRepo repository.QuestionRepository
	selector     QuestionSelector
}

func NewQuestionService(
	subjectRepo repository.SubjectRepository,
	questionRepo repository.QuestionRepository,
	selector QuestionSelector,
) QuestionService {
	return &questionService{
		subjectRepo:  subjectRepo,
		questionRepo: questionRepo,
		selector:     selector,
	}
}

func (s *questionService) Create(creator *model.User, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	subject, err := s.subjectRepo.FindByID(req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.QuestionStatusReady
	}
	question := &model.Question{
		SubjectID:    subject.ID,
		QuestionType: req.QuestionType,
		Status:       status,
		Content:      req.Content,
		Options:      optionsToJSONMap(req.Options),
		Answer:       req.Answer,
		Analysis:     req.Analysis,
		Score:        req.Score,
		MediaURL:     req.MediaURL,
		CreatedByID:  &creator.ID,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	question.Subject = *subject

	log.Info().
		Uint("question_id", question.ID).
		Uint("creator_id", creator.ID).
		Str("question_type", question.QuestionType).
		Msg("Question created")

	resp := questionToResponse(question)
	return &resp, nil
}

// Update edits a question in place. Only the creating teacher or an admin
// may edit; running attempts are unaffected because item scores were frozen
// at attempt creation.
func (s *questionService) Update(editor *model.User, questionID uint, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	if editor.Role != model.RoleAdmin {
		if question.CreatedByID == nil || *question.CreatedByID != editor.ID {
			return nil, ErrForbidden
		}
	}

	if req.Status != nil {
		question.Status = *req.Status
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Options != nil {
		question.Options = optionsToJSONMap(*req.Options)
	}
	if req.Answer != nil {
		question.Answer = *req.Answer
	}
	if req.Analysis != nil {
		question.Analysis = *req.Analysis
	}
	if req.Score != nil {
		question.Score = *req.Score
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}

	resp := questionToResponse(question)
	return &resp, nil
}

func (s *questionService) Get(questionID uint) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	resp := questionToResponse(question)
	return &resp, nil
}

func (s *questionService) BrowseRandom(subjectID uint, questionType string, size int) ([]dto.QuestionResponse, error) {
	if _, err := s.subjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if questionType == "" {
		questionType = model.QuestionTypeObjective
	}
	if !model.ValidQuestionType(questionType) {
		return nil, ErrInvalidQuestionType
	}
	if size <= 0 {
		size = DefaultPaperSize(questionType)
	}

	questions, err := s.selector.Select(subjectID, questionType, size)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, questionToResponse(&questions[i]))
	}
	return responses, nil
}

func optionsToJSONMap(options map[string]string) datatypes.JSONMap {
	if len(options) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(options))
	for label, text := range options {
		out[label] = text
	}
	return out
}
