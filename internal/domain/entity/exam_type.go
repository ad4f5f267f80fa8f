package entity

// ExamType es una entrada del catálogo de exámenes por modalidad.
type ExamType struct {
	ID       int    `json:"id"`
	Modality string `json:"modalidad"` // RX, CT, US, MR, MG, NM
	Name     string `json:"nombre"`
	Code     string `json:"codigo"` // ej. RX001
}
