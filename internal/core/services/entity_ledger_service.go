package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
)

// entityLedgerService reads the per-customer / per-supplier sub-ledger.
// Writes happen only inside the payment and return units of work.
type entityLedgerService struct {
	BaseService
	entityLedgerRepo portsrepo.EntityLedgerReader
}

// NewEntityLedgerService creates a new entity ledger service.
func NewEntityLedgerService(repo portsrepo.EntityLedgerReader) portssvc.EntityLedgerSvcFacade {
	return &entityLedgerService{entityLedgerRepo: repo}
}

// Ensure entityLedgerService implements the EntityLedgerSvcFacade interface
var _ portssvc.EntityLedgerSvcFacade = (*entityLedgerService)(nil)

func (s *entityLedgerService) GetEntityEntries(ctx context.Context, entityType domain.EntityType, entityName string) ([]domain.EntityLedgerEntry, error) {
	if !entityType.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEntityType, entityType)
	}
	entries, err := s.entityLedgerRepo.FindEntityEntries(ctx, entityType, entityName)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entity ledger entries",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_name", entityName))
		return nil, err
	}
	return entries, nil
}
