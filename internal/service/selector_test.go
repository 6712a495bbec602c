package service

import (
	"testing"

	"github.com/quizace/quizace-backend/internal/model"
)

func makePool(n int) []model.Question {
	pool := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		pool = append(pool, model.Question{ID: uint(i), QuestionType: model.QuestionTypeObjective})
	}
	return pool
}

func TestSamplePool_Size(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		request  int
		want     int
	}{
		{name: "pool larger than request", poolSize: 20, request: 10, want: 10},
		{name: "pool equals request", poolSize: 10, request: 10, want: 10},
		{name: "pool smaller than request", poolSize: 3, request: 10, want: 3},
		{name: "single question", poolSize: 1, request: 5, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := samplePool(makePool(tc.poolSize), tc.request)
			if len(got) != tc.want {
				t.Errorf("len = %d, want %d", len(got), tc.want)
			}
		})
	}
}

func TestSamplePool_DistinctAndFromPool(t *testing.T) {
	pool := makePool(50)
	got := samplePool(pool, 10)

	seen := make(map[uint]bool, len(got))
	for _, q := range got {
		if q.ID == 0 || q.ID > 50 {
			t.Errorf("question %d not from the pool", q.ID)
		}
		if seen[q.ID] {
			t.Errorf("question %d drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSamplePool_DoesNotMutateInput(t *testing.T) {
	pool := makePool(10)
	samplePool(pool, 3)
	for i, q := range pool {
		if q.ID != uint(i+1) {
			t.Fatalf("input pool reordered at index %d", i)
		}
	}
}
