package jsonstore

import "path/filepath"

// Nombres de archivo de cada colección dentro del directorio de datos.
const (
	FileMaterials = "materiales.json"
	FileLedger    = "lotes.json"
	FileMovements = "movimientos.json"
	FileExams     = "examenes.json"
	FileUsers     = "usuarios.json"
	FileDoctors   = "medicos.json"
	FileExamTypes = "tipos_examen.json"
	FileAudit     = "auditoria.json"
	FileSettings  = "configuracion.json"
)

// Paths rutas absolutas de las colecciones, derivadas del directorio de datos.
type Paths struct {
	Materials string
	Ledger    string
	Movements string
	Exams     string
	Users     string
	Doctors   string
	ExamTypes string
	Audit     string
	Settings  string
}

// DefaultPaths construye las rutas estándar bajo dataDir.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		Materials: filepath.Join(dataDir, FileMaterials),
		Ledger:    filepath.Join(dataDir, FileLedger),
		Movements: filepath.Join(dataDir, FileMovements),
		Exams:     filepath.Join(dataDir, FileExams),
		Users:     filepath.Join(dataDir, FileUsers),
		Doctors:   filepath.Join(dataDir, FileDoctors),
		ExamTypes: filepath.Join(dataDir, FileExamTypes),
		Audit:     filepath.Join(dataDir, FileAudit),
		Settings:  filepath.Join(dataDir, FileSettings),
	}
}

// nextID devuelve el máximo id de la colección + 1 (asignación por colección).
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}
