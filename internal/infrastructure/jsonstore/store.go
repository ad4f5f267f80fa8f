// Package jsonstore implementa el almacén de registros persistente: una
// colección nombrada = un documento JSON en disco, con su propio mutex y
// reemplazo atómico (escribir a .tmp y renombrar). No hay transacción entre
// colecciones: cada ciclo leer-modificar-escribir es atómico solo dentro de
// su colección.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Collection es un documento JSON versionado en disco con acceso serializado.
// T suele ser un slice de entidades o un mapa (el libro de lotes).
type Collection[T any] struct {
	mu   sync.Mutex
	path string
}

// NewCollection crea la colección sobre la ruta dada. No toca el disco:
// un archivo inexistente se lee como el valor cero de T.
func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// load lee y decodifica el documento. Llamar con el lock tomado.
func (c *Collection[T]) load() (T, error) {
	var doc T
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("leer %s: %w", c.path, err)
	}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decodificar %s: %w", c.path, err)
	}
	return doc, nil
}

// store serializa y reemplaza el documento de forma atómica: escribe a un
// archivo temporal y lo renombra sobre el definitivo. Llamar con el lock tomado.
func (c *Collection[T]) store(doc T) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de datos: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar %s: %w", c.path, err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", c.path, err)
	}
	return nil
}

// View ejecuta fn sobre una lectura del documento, bajo el lock de la colección.
func (c *Collection[T]) View(fn func(T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, err := c.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update ejecuta fn sobre el documento en memoria y lo persiste SOLO si fn
// devuelve nil. Un error de fn descarta todas las mutaciones en memoria:
// es la base del todo-o-nada por colección.
func (c *Collection[T]) Update(fn func(*T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, err := c.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return c.store(doc)
}
