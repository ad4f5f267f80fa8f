package usecase

import (
	"context"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

// SettingsUseCase lee y actualiza la configuración del portal.
type SettingsUseCase struct {
	settings repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso de configuración.
func NewSettingsUseCase(settings repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get devuelve la configuración vigente.
func (uc *SettingsUseCase) Get(ctx context.Context) (entity.Settings, error) {
	return uc.settings.Get()
}

// Update aplica cambios parciales y persiste.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (entity.Settings, error) {
	s, err := uc.settings.Get()
	if err != nil {
		return entity.Settings{}, err
	}
	if in.PortalName != nil {
		s.PortalName = *in.PortalName
	}
	if in.Theme != nil {
		s.Theme = *in.Theme
	}
	if in.LogoHeightPx != nil {
		s.LogoHeightPx = *in.LogoHeightPx
	}
	if err := uc.settings.Save(s); err != nil {
		return entity.Settings{}, err
	}
	return s, nil
}
