package repository

import "github.com/jhoicas/Radiologia-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	List() ([]entity.User, error)
	GetByID(id int) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Create(u *entity.User) (int, error)
	Update(id int, fields func(*entity.User)) (bool, error)
	Delete(id int) (bool, error)
}

// DoctorRepository define el puerto de persistencia para Doctor.
type DoctorRepository interface {
	List() ([]entity.Doctor, error)
	Create(d *entity.Doctor) (int, error)
	Update(id int, fields func(*entity.Doctor)) (bool, error)
	Delete(id int) (bool, error)
}

// ExamTypeRepository define el puerto de persistencia para ExamType.
type ExamTypeRepository interface {
	List() ([]entity.ExamType, error)
	Create(t *entity.ExamType) (int, error)
	Update(id int, fields func(*entity.ExamType)) (bool, error)
	Delete(id int) (bool, error)
}

// AuditRepository define el puerto del log de auditoría (append-only).
type AuditRepository interface {
	List() ([]entity.AuditEntry, error)
	Append(e *entity.AuditEntry) error
}

// SettingsRepository define el puerto de la configuración del portal.
type SettingsRepository interface {
	Get() (entity.Settings, error)
	Save(s entity.Settings) error
}
