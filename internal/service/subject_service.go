package service

import (
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/repository"
)

type SubjectService interface {
	List() ([]dto.SubjectResponse, error)
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
}

func NewSubjectService(subjectRepo repository.SubjectRepository) SubjectService {
	return &subjectService{subjectRepo: subjectRepo}
}

func (s *subjectService) List() ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		responses = append(responses, subjectToResponse(&subjects[i]))
	}
	return responses, nil
}
