package jsonstore

import (
	"strings"
	"time"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.DoctorRepository   = (*DoctorRepo)(nil)
	_ repository.ExamTypeRepository = (*ExamTypeRepo)(nil)
	_ repository.AuditRepository    = (*AuditRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
)

// UserRepo implementación de UserRepository sobre la colección JSON.
type UserRepo struct {
	col *Collection[[]entity.User]
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(path string) *UserRepo {
	return &UserRepo{col: NewCollection[[]entity.User](path)}
}

func (r *UserRepo) List() ([]entity.User, error) {
	var out []entity.User
	err := r.col.View(func(rows []entity.User) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByID(id int) (*entity.User, error) {
	var found *entity.User
	err := r.col.View(func(rows []entity.User) error {
		for i := range rows {
			if rows[i].ID == id {
				u := rows[i]
				found = &u
				return nil
			}
		}
		return nil
	})
	return found, err
}

// FindByEmail busca por email, insensible a mayúsculas, o nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var found *entity.User
	err := r.col.View(func(rows []entity.User) error {
		for i := range rows {
			if strings.ToLower(rows[i].Email) == email {
				u := rows[i]
				found = &u
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *UserRepo) Create(u *entity.User) (int, error) {
	err := r.col.Update(func(rows *[]entity.User) error {
		u.ID = nextID(*rows, func(x entity.User) int { return x.ID })
		*rows = append(*rows, *u)
		return nil
	})
	return u.ID, err
}

func (r *UserRepo) Update(id int, fields func(*entity.User)) (bool, error) {
	ok := false
	err := r.col.Update(func(rows *[]entity.User) error {
		for i := range *rows {
			if (*rows)[i].ID == id {
				fields(&(*rows)[i])
				ok = true
				break
			}
		}
		return nil
	})
	return ok, err
}

func (r *UserRepo) Delete(id int) (bool, error) {
	return deleteByID(r.col, id, func(x entity.User) int { return x.ID })
}

// DoctorRepo implementación de DoctorRepository sobre la colección JSON.
type DoctorRepo struct {
	col *Collection[[]entity.Doctor]
}

// NewDoctorRepository construye el adaptador de médicos.
func NewDoctorRepository(path string) *DoctorRepo {
	return &DoctorRepo{col: NewCollection[[]entity.Doctor](path)}
}

func (r *DoctorRepo) List() ([]entity.Doctor, error) {
	var out []entity.Doctor
	err := r.col.View(func(rows []entity.Doctor) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

func (r *DoctorRepo) Create(d *entity.Doctor) (int, error) {
	err := r.col.Update(func(rows *[]entity.Doctor) error {
		d.ID = nextID(*rows, func(x entity.Doctor) int { return x.ID })
		*rows = append(*rows, *d)
		return nil
	})
	return d.ID, err
}

func (r *DoctorRepo) Update(id int, fields func(*entity.Doctor)) (bool, error) {
	ok := false
	err := r.col.Update(func(rows *[]entity.Doctor) error {
		for i := range *rows {
			if (*rows)[i].ID == id {
				fields(&(*rows)[i])
				ok = true
				break
			}
		}
		return nil
	})
	return ok, err
}

func (r *DoctorRepo) Delete(id int) (bool, error) {
	return deleteByID(r.col, id, func(x entity.Doctor) int { return x.ID })
}

// ExamTypeRepo implementación de ExamTypeRepository sobre la colección JSON.
type ExamTypeRepo struct {
	col *Collection[[]entity.ExamType]
}

// NewExamTypeRepository construye el adaptador del catálogo de exámenes.
func NewExamTypeRepository(path string) *ExamTypeRepo {
	return &ExamTypeRepo{col: NewCollection[[]entity.ExamType](path)}
}

func (r *ExamTypeRepo) List() ([]entity.ExamType, error) {
	var out []entity.ExamType
	err := r.col.View(func(rows []entity.ExamType) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

func (r *ExamTypeRepo) Create(t *entity.ExamType) (int, error) {
	err := r.col.Update(func(rows *[]entity.ExamType) error {
		t.ID = nextID(*rows, func(x entity.ExamType) int { return x.ID })
		*rows = append(*rows, *t)
		return nil
	})
	return t.ID, err
}

func (r *ExamTypeRepo) Update(id int, fields func(*entity.ExamType)) (bool, error) {
	ok := false
	err := r.col.Update(func(rows *[]entity.ExamType) error {
		for i := range *rows {
			if (*rows)[i].ID == id {
				fields(&(*rows)[i])
				ok = true
				break
			}
		}
		return nil
	})
	return ok, err
}

func (r *ExamTypeRepo) Delete(id int) (bool, error) {
	return deleteByID(r.col, id, func(x entity.ExamType) int { return x.ID })
}

// AuditRepo implementación append-only del log de auditoría.
type AuditRepo struct {
	col *Collection[[]entity.AuditEntry]
}

// NewAuditRepository construye el adaptador del log de auditoría.
func NewAuditRepository(path string) *AuditRepo {
	return &AuditRepo{col: NewCollection[[]entity.AuditEntry](path)}
}

func (r *AuditRepo) List() ([]entity.AuditEntry, error) {
	var out []entity.AuditEntry
	err := r.col.View(func(rows []entity.AuditEntry) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

func (r *AuditRepo) Append(e *entity.AuditEntry) error {
	return r.col.Update(func(rows *[]entity.AuditEntry) error {
		e.ID = nextID(*rows, func(x entity.AuditEntry) int { return x.ID })
		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now().UTC()
		}
		*rows = append(*rows, *e)
		return nil
	})
}

// SettingsRepo implementación de SettingsRepository (registro único).
type SettingsRepo struct {
	col *Collection[*entity.Settings]
}

// NewSettingsRepository construye el adaptador de configuración del portal.
func NewSettingsRepository(path string) *SettingsRepo {
	return &SettingsRepo{col: NewCollection[*entity.Settings](path)}
}

// Get devuelve la configuración persistida o los valores por defecto.
func (r *SettingsRepo) Get() (entity.Settings, error) {
	out := entity.DefaultSettings()
	err := r.col.View(func(s *entity.Settings) error {
		if s != nil {
			out = *s
		}
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Save(s entity.Settings) error {
	return r.col.Update(func(cur **entity.Settings) error {
		*cur = &s
		return nil
	})
}

// deleteByID elimina el registro con ese id; false si no estaba.
func deleteByID[T any](col *Collection[[]T], id int, idOf func(T) int) (bool, error) {
	removed := false
	err := col.Update(func(rows *[]T) error {
		kept := (*rows)[:0]
		for _, it := range *rows {
			if idOf(it) == id {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		*rows = kept
		return nil
	})
	return removed, err
}
