package repository

import "github.com/jhoicas/Radiologia-api/internal/domain/entity"

// ExamRepository define el puerto de persistencia para Exam (DIP).
type ExamRepository interface {
	List() ([]entity.Exam, error)
	GetByID(id int) (*entity.Exam, error)
	Create(e *entity.Exam) (int, error)
	Replace(e *entity.Exam) (bool, error)
}
