package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/pkg/logger"
)

// AuditService registra quién hizo qué sobre qué entidad. Un fallo al
// persistir la auditoría nunca aborta la operación de negocio: se loguea
// y se continúa.
type AuditService struct {
	audit repository.AuditRepository
	log   *logger.Logger
}

// NewAuditService construye el servicio de auditoría.
func NewAuditService(audit repository.AuditRepository, log *logger.Logger) *AuditService {
	return &AuditService{audit: audit, log: log}
}

// Record agrega una entrada append-only con snapshots antes/después.
func (s *AuditService) Record(userEmail, action, entityName string, entityID int, before, after any) {
	if s == nil || s.audit == nil {
		return
	}
	e := &entity.AuditEntry{
		Timestamp: time.Now(),
		UserEmail: userEmail,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Before:    before,
		After:     after,
	}
	if err := s.audit.Append(e); err != nil {
		s.log.Error().Err(err).
			Str("action", action).
			Str("entity", entityName).
			Int("entity_id", entityID).
			Msg("no se pudo registrar la auditoría")
	}
}

// List devuelve el log completo, más reciente primero.
func (s *AuditService) List(ctx context.Context) ([]entity.AuditEntry, error) {
	entries, err := s.audit.List()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
