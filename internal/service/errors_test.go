package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestAttemptLookupErr(t *testing.T) {
	if got := attemptLookupErr(gorm.ErrRecordNotFound); !errors.Is(got, ErrAttemptNotFound) {
		t.Errorf("record-not-found mapped to %v, want ErrAttemptNotFound", got)
	}
	other := errors.New("connection reset")
	if got := attemptLookupErr(other); got != other {
		t.Errorf("unrelated error rewritten to %v", got)
	}
	if got := attemptLookupErr(nil); got != nil {
		t.Errorf("nil error rewritten to %v", got)
	}
}
