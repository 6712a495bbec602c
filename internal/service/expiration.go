package service

import (
	"fmt"
	"time"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExpirationGuard lazily finalizes attempts whose duration has elapsed.
// There is no background timer: every read path that touches an attempt
// runs the guard, and the first caller to observe the elapsed window
// performs the single finalization write.
type ExpirationGuard interface {
	// EnsureNotExpired checks wall-clock expiry for the attempt. The caller
	// must hold the attempt's exclusive row lock inside tx and pass the row
	// read under that lock, so the status re-check here cannot race a
	// concurrent submit. Returns the expiry instant, clamped remaining
	// seconds, and the finalized items when expiry fired (nil otherwise).
	EnsureNotExpired(tx *gorm.DB, attempt *model.PracticeAttempt) (time.Time, int, []model.PracticeAttemptItem, error)
}

type expirationGuard struct {
	attemptRepo repository.AttemptRepository
	evaluator   Evaluator
	clk         clock.Clock
}

func NewExpirationGuard(attemptRepo repository.AttemptRepository, evaluator Evaluator, clk clock.Clock) ExpirationGuard {
	return &expirationGuard{attemptRepo: attemptRepo, evaluator: evaluator, clk: clk}
}

func (g *expirationGuard) EnsureNotExpired(tx *gorm.DB, attempt *model.PracticeAttempt) (time.Time, int, []model.PracticeAttemptItem, error) {
	now := g.clk.Now()
	expiresAt := attempt.ExpiresAt()
	remaining := attempt.RemainingSeconds(now)

	if attempt.Status != model.AttemptStatusOngoing || !attempt.DeadlinePassed(now) {
		return expiresAt, remaining, nil, nil
	}

	// First observation of the elapsed window: score whatever was last
	// saved and transition to expired.
	result, err := g.evaluator.Evaluate(tx, attempt, nil)
	if err != nil {
		return expiresAt, remaining, nil, err
	}

	attempt.CorrectCount = result.CorrectCount
	attempt.TotalScore = result.TotalScore
	attempt.ObtainedScore = result.ObtainedScore
	attempt.Status = model.AttemptStatusExpired
	attempt.SubmittedAt = &now
	attempt.IsReviewRequired = result.HasSubjective

	fields := []string{"correct_count", "total_score", "obtained_score", "status", "submitted_at", "is_review_required"}
	if err := g.attemptRepo.UpdateFields(tx, attempt, fields...); err != nil {
		return expiresAt, remaining, nil, fmt.Errorf("finalizing expired attempt %d: %w", attempt.ID, err)
	}

	log.Info().
		Uint("attempt_id", attempt.ID).
		Bool("review_required", attempt.IsReviewRequired).
		Msg("Attempt expired and was auto-finalized")

	return expiresAt, remaining, result.Items, nil
}
