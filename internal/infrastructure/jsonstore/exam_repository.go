package jsonstore

import (
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

var _ repository.ExamRepository = (*ExamRepo)(nil)

// ExamRepo implementación de ExamRepository sobre la colección JSON.
type ExamRepo struct {
	col *Collection[[]entity.Exam]
}

// NewExamRepository construye el adaptador de exámenes.
func NewExamRepository(path string) *ExamRepo {
	return &ExamRepo{col: NewCollection[[]entity.Exam](path)}
}

// List devuelve todos los exámenes.
func (r *ExamRepo) List() ([]entity.Exam, error) {
	var out []entity.Exam
	err := r.col.View(func(rows []entity.Exam) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

// GetByID devuelve el examen o nil si no existe.
func (r *ExamRepo) GetByID(id int) (*entity.Exam, error) {
	var found *entity.Exam
	err := r.col.View(func(rows []entity.Exam) error {
		for i := range rows {
			if rows[i].ID == id {
				e := rows[i]
				found = &e
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Create asigna id por colección y persiste.
func (r *ExamRepo) Create(e *entity.Exam) (int, error) {
	err := r.col.Update(func(rows *[]entity.Exam) error {
		e.ID = nextID(*rows, func(x entity.Exam) int { return x.ID })
		*rows = append(*rows, *e)
		return nil
	})
	return e.ID, err
}

// Replace sustituye el registro completo por id; false si no existe.
func (r *ExamRepo) Replace(e *entity.Exam) (bool, error) {
	ok := false
	err := r.col.Update(func(rows *[]entity.Exam) error {
		for i := range *rows {
			if (*rows)[i].ID == e.ID {
				(*rows)[i] = *e
				ok = true
				break
			}
		}
		return nil
	})
	return ok, err
}
