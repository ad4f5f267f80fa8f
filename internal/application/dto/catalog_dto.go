package dto

// CreateDoctorRequest alta de médico solicitante.
type CreateDoctorRequest struct {
	Name string `json:"nombre" validate:"required"`
}

// CreateExamTypeRequest alta de una entrada del catálogo de exámenes.
type CreateExamTypeRequest struct {
	Modality string `json:"modalidad" validate:"required,oneof=RX CT US MR MG NM"`
	Name     string `json:"nombre" validate:"required"`
	Code     string `json:"codigo"`
}

// UpdateExamTypeRequest actualización parcial; nil = sin cambio.
type UpdateExamTypeRequest struct {
	Modality *string `json:"modalidad,omitempty" validate:"omitempty,oneof=RX CT US MR MG NM"`
	Name     *string `json:"nombre,omitempty"`
	Code     *string `json:"codigo,omitempty"`
}

// UpdateSettingsRequest cambios de la configuración del portal.
type UpdateSettingsRequest struct {
	PortalName   *string `json:"portal_name,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	LogoHeightPx *int    `json:"logo_height_px,omitempty" validate:"omitempty,min=16,max=200"`
}
