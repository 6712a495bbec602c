package service

import (
	"testing"
	"time"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"gorm.io/gorm"
)

func TestIsItemWrong(t *testing.T) {
	correct := true
	wrong := false

	tests := []struct {
		name string
		item model.PracticeAttemptItem
		want bool
	}{
		{
			name: "objective judged wrong",
			item: model.PracticeAttemptItem{
				IsCorrect: &wrong,
				Question:  model.Question{QuestionType: model.QuestionTypeObjective},
			},
			want: true,
		},
		{
			name: "objective judged correct",
			item: model.PracticeAttemptItem{
				IsCorrect: &correct,
				Question:  model.Question{QuestionType: model.QuestionTypeObjective},
			},
			want: false,
		},
		{
			name: "objective never evaluated",
			item: model.PracticeAttemptItem{
				Question: model.Question{QuestionType: model.QuestionTypeObjective},
			},
			want: false,
		},
		{
			name: "subjective below max",
			item: model.PracticeAttemptItem{
				ExpectedScore: 20,
				AwardedScore:  15,
				Question:      model.Question{QuestionType: model.QuestionTypeSubjective},
			},
			want: true,
		},
		{
			name: "subjective full marks",
			item: model.PracticeAttemptItem{
				ExpectedScore: 20,
				AwardedScore:  20,
				Question:      model.Question{QuestionType: model.QuestionTypeSubjective},
			},
			want: false,
		},
		{
			name: "subjective zero awarded",
			item: model.PracticeAttemptItem{
				ExpectedScore: 20,
				AwardedScore:  0,
				Question:      model.Question{QuestionType: model.QuestionTypeSubjective},
			},
			want: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isItemWrong(&tc.item); got != tc.want {
				t.Errorf("isItemWrong() = %v, want %v", got, tc.want)
			}
		})
	}
}

type fakeItemLookupRepo struct {
	repository.AttemptRepository
	item    model.PracticeAttemptItem
	attempt model.PracticeAttempt
}

func (f *fakeItemLookupRepo) FindItemForUser(itemID, userID uint) (*model.PracticeAttemptItem, error) {
	item := f.item
	return &item, nil
}

func (f *fakeItemLookupRepo) FindByIDAndUser(id, userID uint) (*model.PracticeAttempt, error) {
	attempt := f.attempt
	return &attempt, nil
}

// fakeWrongBookRepo applies the conflict-target semantics of the real
// upsert: first write inserts, later writes bump the counter.
type fakeWrongBookRepo struct {
	repository.WrongBookRepository
	stored      *model.WrongBookEntry
	upsertCalls int
}

func (f *fakeWrongBookRepo) Upsert(entry *model.WrongBookEntry) error {
	f.upsertCalls++
	if f.stored == nil {
		clone := *entry
		clone.ID = 1
		f.stored = &clone
		return nil
	}
	f.stored.WrongTimes++
	f.stored.LastAttemptID = entry.LastAttemptID
	f.stored.LastAttemptItemID = entry.LastAttemptItemID
	f.stored.LastUserAnswer = entry.LastUserAnswer
	f.stored.LastWrongAt = entry.LastWrongAt
	return nil
}

func (f *fakeWrongBookRepo) FindByUserAndQuestion(userID, questionID uint) (*model.WrongBookEntry, error) {
	if f.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.stored, nil
}

func TestWrongBookRegister_SingleUpsertPerCall(t *testing.T) {
	wrong := false
	attemptID := uint(4)
	itemRepo := &fakeItemLookupRepo{
		item: model.PracticeAttemptItem{
			ID:         9,
			AttemptID:  attemptID,
			QuestionID: 3,
			UserAnswer: "B",
			IsCorrect:  &wrong,
			Question: model.Question{
				ID:           3,
				SubjectID:    2,
				QuestionType: model.QuestionTypeObjective,
				Subject:      model.Subject{ID: 2, Name: "Math"},
			},
		},
		attempt: model.PracticeAttempt{ID: attemptID, Status: model.AttemptStatusCompleted},
	}
	bookRepo := &fakeWrongBookRepo{}
	clk := &clock.Fixed{Current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewWrongBookService(itemRepo, bookRepo, clk)

	first, err := svc.Register(1, dto.AddWrongBookRequest{AttemptItemID: 9})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if bookRepo.upsertCalls != 1 {
		t.Errorf("upsert calls = %d, want 1", bookRepo.upsertCalls)
	}
	if first.WrongTimes != 1 {
		t.Errorf("first WrongTimes = %d, want 1", first.WrongTimes)
	}

	second, err := svc.Register(1, dto.AddWrongBookRequest{AttemptItemID: 9})
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if bookRepo.upsertCalls != 2 {
		t.Errorf("upsert calls = %d, want 2", bookRepo.upsertCalls)
	}
	if second.WrongTimes != 2 {
		t.Errorf("second WrongTimes = %d, want 2", second.WrongTimes)
	}
	if bookRepo.stored.LastAttemptItemID == nil || *bookRepo.stored.LastAttemptItemID != 9 {
		t.Error("back-reference to the attempt item not replaced")
	}
}
