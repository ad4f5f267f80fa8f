package entity

// Doctor representa un médico solicitante.
type Doctor struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}
