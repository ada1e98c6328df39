package audit

import (
	"context"
)

const defaultListLimit = 100

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	GetRecent(ctx context.Context) ([]EntryResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetRecent(ctx context.Context) ([]EntryResponse, error) {
	entries, err := s.repo.FindRecent(ctx, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}
