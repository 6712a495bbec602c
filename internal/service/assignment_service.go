package service

import (
	"errors"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssignmentService manages teacher-published exams and the exam-mode
// attempt flow built on top of them.
type AssignmentService interface {
	Create(teacherID uint, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	ListForTeacher(teacherID uint) ([]dto.AssignmentResponse, error)
	ListAvailable(userID uint) ([]dto.AssignmentResponse, error)
	Start(userID, assignmentID uint) (*dto.StartAttemptResponse, error)
	Submissions(teacher *model.User, assignmentID uint) (*dto.AssignmentSubmissionsResponse, error)
}

type assignmentService struct {
	db             *gorm.DB
	subjectRepo    repository.SubjectRepository
	assignmentRepo repository.AssignmentRepository
	attemptRepo    repository.AttemptRepository
	factory        AttemptFactory
	guard          ExpirationGuard
	clk            clock.Clock
}

func NewAssignmentService(
	db *gorm.DB,
	subjectRepo repository.SubjectRepository,
	assignmentRepo repository.AssignmentRepository,
	attemptRepo repository.AttemptRepository,
	factory AttemptFactory,
	guard ExpirationGuard,
	clk clock.Clock,
) AssignmentService {
	return &assignmentService{
		db:             db,
		subjectRepo:    subjectRepo,
		assignmentRepo: assignmentRepo,
		attemptRepo:    attemptRepo,
		factory:        factory,
		guard:          guard,
		clk:            clk,
	}
}

func (s *assignmentService) Create(teacherID uint, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	subject, err := s.subjectRepo.FindByID(req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeWindow
	}
	if req.QuestionType == model.QuestionTypeMixed && len(req.QuestionIDs) == 0 {
		return nil, ErrEmptyPaper
	}

	questionCount := req.QuestionCount
	if len(req.QuestionIDs) > 0 {
		questionCount = len(req.QuestionIDs)
	} else if questionCount <= 0 {
		questionCount = DefaultPaperSize(req.QuestionType)
	}
	duration := req.DurationSeconds
	if duration <= 0 {
		duration = DefaultDurationSeconds
	}
	status := req.Status
	if status == "" {
		status = model.AssignmentStatusPublished
	}

	assignment := &model.ExamAssignment{
		Title:           req.Title,
		SubjectID:       subject.ID,
		QuestionType:    req.QuestionType,
		QuestionCount:   questionCount,
		DurationSeconds: duration,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          status,
		Description:     req.Description,
		QuestionIDs:     datatypes.NewJSONSlice(req.QuestionIDs),
		CreatedByID:     teacherID,
	}
	if len(req.ScoreOverrides) > 0 {
		assignment.ScoreOverrides = datatypes.NewJSONType(req.ScoreOverrides)
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	assignment.Subject = *subject

	log.Info().
		Uint("assignment_id", assignment.ID).
		Uint("teacher_id", teacherID).
		Str("question_type", assignment.QuestionType).
		Msg("Assignment created")

	resp := assignmentToResponse(assignment, s.clk.Now())
	return &resp, nil
}

func (s *assignmentService) ListForTeacher(teacherID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListByCreator(teacherID)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp := assignmentToResponse(&assignments[i], now)
		attempts, err := s.assignmentRepo.CountAttempts(assignments[i].ID)
		if err != nil {
			return nil, err
		}
		pending, err := s.assignmentRepo.CountPendingReviews(assignments[i].ID)
		if err != nil {
			return nil, err
		}
		resp.TotalAttempts = &attempts
		resp.PendingReviews = &pending
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListAvailable shows published assignments to a student, annotated with the
// student's own latest attempt so the client can offer resume or result
// links instead of a fresh start.
func (s *assignmentService) ListAvailable(userID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListPublished()
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp := assignmentToResponse(&assignments[i], now)
		attempt, err := s.attemptRepo.LatestByAssignmentAndUser(assignments[i].ID, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return nil, err
		default:
			resp.AttemptID = &attempt.ID
			status := attempt.Status
			mode := attempt.Mode
			resp.AttemptStatus = &status
			resp.AttemptMode = &mode
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Start begins or resumes the student's run of an assignment. An ongoing
// attempt inside the window is resumed with its remaining time; a terminal
// attempt blocks a second run.
func (s *assignmentService) Start(userID, assignmentID uint) (*dto.StartAttemptResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.Status != model.AssignmentStatusPublished {
		return nil, ErrAssignmentNotPublished
	}
	now := s.clk.Now()
	switch assignment.Phase(now) {
	case model.AssignmentPhaseUpcoming:
		return nil, ErrAssignmentNotStarted
	case model.AssignmentPhaseEnded:
		return nil, ErrAssignmentEnded
	}

	previous, err := s.attemptRepo.LatestByAssignmentAndUser(assignmentID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if previous != nil {
		return s.resumePrevious(userID, previous.ID, assignment)
	}

	attempt, questions, expiresAt, remaining, err := s.factory.CreateAttempt(CreateAttemptParams{
		UserID:            userID,
		Subject:           &assignment.Subject,
		QuestionType:      assignment.QuestionType,
		Size:              assignment.QuestionCount,
		DurationSeconds:   assignment.DurationSeconds,
		Mode:              model.AttemptModeExam,
		Assignment:        assignment,
		PresetQuestionIDs: assignment.QuestionIDs,
		ScoreOverrides:    assignment.ScoreOverrides.Data(),
	})
	if err != nil {
		return nil, err
	}

	assignmentResp := assignmentToResponse(assignment, now)
	return &dto.StartAttemptResponse{
		AttemptID:        attempt.ID,
		Subject:          subjectToResponse(&assignment.Subject),
		QuestionType:     attempt.QuestionType,
		DurationSeconds:  attempt.DurationSeconds,
		StartedAt:        attempt.StartedAt,
		ExpiresAt:        expiresAt,
		RemainingSeconds: remaining,
		Mode:             attempt.Mode,
		Questions:        questions,
		Assignment:       &assignmentResp,
	}, nil
}

// resumePrevious re-checks the student's latest attempt under its row lock.
// A still-ongoing attempt is returned as a resume with its remaining time; a
// terminal one, including one the guard expired just now, means the
// assignment was already taken.
func (s *assignmentService) resumePrevious(userID, attemptID uint, assignment *model.ExamAssignment) (*dto.StartAttemptResponse, error) {
	var resp *dto.StartAttemptResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindForUpdate(tx, attemptID, &userID)
		if err != nil {
			return attemptLookupErr(err)
		}
		expiresAt, remaining, _, err := s.guard.EnsureNotExpired(tx, attempt)
		if err != nil {
			return err
		}
		if attempt.Status != model.AttemptStatusOngoing {
			return ErrAssignmentAlreadyTaken
		}

		items, err := s.attemptRepo.ListItems(tx, attempt.ID)
		if err != nil {
			return err
		}
		questions := make([]model.Question, 0, len(items))
		for i := range items {
			questions = append(questions, items[i].Question)
		}

		now := s.clk.Now()
		assignmentResp := assignmentToResponse(assignment, now)
		resp = &dto.StartAttemptResponse{
			AttemptID:        attempt.ID,
			Subject:          subjectToResponse(&assignment.Subject),
			QuestionType:     attempt.QuestionType,
			DurationSeconds:  attempt.DurationSeconds,
			StartedAt:        attempt.StartedAt,
			ExpiresAt:        expiresAt,
			RemainingSeconds: remaining,
			Mode:             attempt.Mode,
			Questions:        questionsToPaperPayload(questions, items),
			Assignment:       &assignmentResp,
			Resumed:          true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Submissions lists every attempt of one assignment for its creating
// teacher.
func (s *assignmentService) Submissions(teacher *model.User, assignmentID uint) (*dto.AssignmentSubmissionsResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.CreatedByID != teacher.ID && teacher.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	attempts, err := s.attemptRepo.ListByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	results := make([]dto.AttemptResponse, 0, len(attempts))
	for i := range attempts {
		results = append(results, attemptToResponse(&attempts[i]))
	}
	return &dto.AssignmentSubmissionsResponse{
		Assignment: assignmentToResponse(assignment, s.clk.Now()),
		Attempts:   results,
	}, nil
}
