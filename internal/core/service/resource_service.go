package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/resourcehub/resource-api/internal/core/authz"
	"github.com/resourcehub/resource-api/internal/core/domain"
	"github.com/resourcehub/resource-api/internal/core/ports"
)

// ResourceService implements the resource use cases. Authorization is
// decided at the route gate before these methods run; the service stamps
// ownership from the explicit caller identity and records audit events for
// every mutation.
type ResourceService struct {
	repo   ports.ResourceRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewResourceService(repo ports.ResourceRepository, audit ports.AuditSink, logger zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, audit: audit, logger: logger}
}

func (s *ResourceService) List(ctx context.Context, _ ports.Identity) ([]*domain.Resource, error) {
	// No per-row filtering: every authenticated identity sees all resources.
	return s.repo.List(ctx)
}

func (s *ResourceService) Get(ctx context.Context, _ ports.Identity, id string) (*domain.Resource, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ResourceService) Create(ctx context.Context, ident ports.Identity, in ports.CreateResourceInput) (*domain.Resource, error) {
	now := time.Now().UTC()
	resource := &domain.Resource{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   ident.ID,
	}

	created, err := s.repo.Create(ctx, resource)
	if err != nil {
		s.logger.Error().Err(err).Str("actor", ident.Username).Msg("failed to create resource")
		return nil, err
	}

	s.logger.Info().Str("resource_id", created.ID).Str("actor", ident.Username).Msg("resource created")
	s.recordAudit(ident, authz.ActionCreate, created.ID)
	return created, nil
}

func (s *ResourceService) Update(ctx context.Context, ident ports.Identity, id string, update ports.ResourceUpdate) (*domain.Resource, error) {
	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("resource_id", id).Str("actor", ident.Username).Msg("resource updated")
	s.recordAudit(ident, authz.ActionUpdate, id)
	return updated, nil
}

func (s *ResourceService) Delete(ctx context.Context, ident ports.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("resource_id", id).Str("actor", ident.Username).Msg("resource deleted")
	s.recordAudit(ident, authz.ActionDelete, id)
	return nil
}

func (s *ResourceService) recordAudit(ident ports.Identity, action authz.Action, resourceID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		ActorID:    ident.ID,
		Actor:      ident.Username,
		Role:       ident.Role,
		Action:     string(action),
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
	})
}
