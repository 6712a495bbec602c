package service

import (
	"testing"
	"time"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"gorm.io/gorm"
)

type fakeAttemptRepo struct {
	repository.AttemptRepository
	updatedFields []string
	updateCalls   int
}

func (f *fakeAttemptRepo) UpdateFields(tx *gorm.DB, attempt *model.PracticeAttempt, fields ...string) error {
	f.updateCalls++
	f.updatedFields = fields
	return nil
}

type fakeEvaluator struct {
	result *EvaluationResult
	calls  int
}

func (f *fakeEvaluator) Evaluate(tx *gorm.DB, attempt *model.PracticeAttempt, answerMap map[uint]string) (*EvaluationResult, error) {
	f.calls++
	if answerMap != nil {
		panic("expiry finalization must score stored answers only")
	}
	return f.result, nil
}

func TestExpirationGuard_NotYetExpired(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := &clock.Fixed{Current: start.Add(10 * time.Minute)}
	repo := &fakeAttemptRepo{}
	eval := &fakeEvaluator{}
	guard := NewExpirationGuard(repo, eval, clk)

	attempt := &model.PracticeAttempt{
		Status:          model.AttemptStatusOngoing,
		StartedAt:       start,
		DurationSeconds: 1800,
	}

	expiresAt, remaining, items, err := guard.EnsureNotExpired(nil, attempt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expiresAt.Equal(start.Add(30 * time.Minute)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}
	if remaining != 1200 {
		t.Errorf("remaining = %d, want 1200", remaining)
	}
	if items != nil {
		t.Error("items should be nil when no finalization happened")
	}
	if eval.calls != 0 || repo.updateCalls != 0 {
		t.Error("guard mutated a live attempt")
	}
	if attempt.Status != model.AttemptStatusOngoing {
		t.Errorf("status = %q", attempt.Status)
	}
}

func TestExpirationGuard_FinalSecondStillLive(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := start.Add(30 * time.Minute)
	repo := &fakeAttemptRepo{}
	eval := &fakeEvaluator{}

	// The truncated remaining-seconds display already reads zero here, but
	// the deadline instant has not passed yet.
	for _, now := range []time.Time{deadline.Add(-500 * time.Millisecond), deadline} {
		clk := &clock.Fixed{Current: now}
		guard := NewExpirationGuard(repo, eval, clk)
		attempt := &model.PracticeAttempt{
			Status:          model.AttemptStatusOngoing,
			StartedAt:       start,
			DurationSeconds: 1800,
		}

		_, remaining, _, err := guard.EnsureNotExpired(nil, attempt)
		if err != nil {
			t.Fatalf("unexpected error at %v: %v", now, err)
		}
		if remaining != 0 {
			t.Errorf("remaining at %v = %d, want 0", now, remaining)
		}
		if eval.calls != 0 || repo.updateCalls != 0 {
			t.Errorf("guard finalized at %v, before the deadline passed", now)
		}
		if attempt.Status != model.AttemptStatusOngoing {
			t.Errorf("status at %v = %q, want ongoing", now, attempt.Status)
		}
	}
}

func TestExpirationGuard_FinalizesElapsedAttempt(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := &clock.Fixed{Current: start}
	clk.Advance(31 * time.Minute)
	repo := &fakeAttemptRepo{}
	eval := &fakeEvaluator{result: &EvaluationResult{
		CorrectCount:  3,
		TotalScore:    50,
		ObtainedScore: 30,
		HasSubjective: true,
		Items:         []model.PracticeAttemptItem{{ID: 1}},
	}}
	guard := NewExpirationGuard(repo, eval, clk)

	attempt := &model.PracticeAttempt{
		ID:              7,
		Status:          model.AttemptStatusOngoing,
		StartedAt:       start,
		DurationSeconds: 1800,
	}

	_, remaining, items, err := guard.EnsureNotExpired(nil, attempt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if len(items) != 1 {
		t.Fatalf("items = %v, want the finalized set", items)
	}
	if eval.calls != 1 {
		t.Errorf("evaluator calls = %d, want 1", eval.calls)
	}
	if attempt.Status != model.AttemptStatusExpired {
		t.Errorf("status = %q, want expired", attempt.Status)
	}
	if attempt.SubmittedAt == nil || !attempt.SubmittedAt.Equal(clk.Current) {
		t.Error("SubmittedAt not stamped with the guard's clock reading")
	}
	if !attempt.IsReviewRequired {
		t.Error("IsReviewRequired = false, want true for subjective items")
	}
	if attempt.ObtainedScore != 30 || attempt.TotalScore != 50 || attempt.CorrectCount != 3 {
		t.Errorf("aggregates = %d/%d correct %d", attempt.ObtainedScore, attempt.TotalScore, attempt.CorrectCount)
	}
	if repo.updateCalls != 1 {
		t.Errorf("update calls = %d, want 1", repo.updateCalls)
	}
}

func TestExpirationGuard_TerminalAttemptUntouched(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := &clock.Fixed{Current: start.Add(2 * time.Hour)}
	repo := &fakeAttemptRepo{}
	eval := &fakeEvaluator{}
	guard := NewExpirationGuard(repo, eval, clk)

	submitted := start.Add(20 * time.Minute)
	attempt := &model.PracticeAttempt{
		Status:          model.AttemptStatusCompleted,
		StartedAt:       start,
		DurationSeconds: 1800,
		SubmittedAt:     &submitted,
		ObtainedScore:   42,
	}

	_, remaining, _, err := guard.EnsureNotExpired(nil, attempt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if eval.calls != 0 || repo.updateCalls != 0 {
		t.Error("guard touched a terminal attempt")
	}
	if attempt.ObtainedScore != 42 {
		t.Errorf("score changed to %d", attempt.ObtainedScore)
	}
}
