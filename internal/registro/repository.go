package registro

import (
	"context"
	"errors"

	"github.com/conselhodigital/tutelar/internal/store"
)

// ErrNotFound é retornado quando nenhum registro é encontrado.
var ErrNotFound = errors.New("registro não encontrado")

// Repository aplica o contrato de ciclo de vida sobre uma coleção.
type Repository struct {
	col *store.Collection[Registro]
}

// NewRepository abre a coleção informada no diretório de dados.
func NewRepository(dataDir, collection string) (*Repository, error) {
	col, err := store.NewCollection[Registro](dataDir, collection)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

// List devolve todos os registros da coleção.
func (r *Repository) List(ctx context.Context) ([]Registro, error) {
	return r.col.All()
}

// Create insere um novo registro com id max+1 e carimbos de criação.
// Campos de controle presentes no corpo são ignorados.
func (r *Repository) Create(ctx context.Context, fields Registro, createdBy int64) (Registro, error) {
	var created Registro

	err := r.col.Mutate(func(records []Registro) ([]Registro, error) {
		created = Registro{}.merge(fields)
		created[FieldID] = store.NextID(records, Registro.ID)
		created[FieldCreatedAt] = timestamp()
		created[FieldCreatedBy] = createdBy
		return append(records, created), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update faz merge raso dos campos informados sobre o registro existente
// e carimba updatedAt. Id inexistente devolve ErrNotFound sem alterar a
// coleção.
func (r *Repository) Update(ctx context.Context, id int64, fields Registro) (Registro, error) {
	var updated Registro

	err := r.col.Mutate(func(records []Registro) ([]Registro, error) {
		for i, rec := range records {
			if rec.ID() != id {
				continue
			}
			updated = rec.merge(fields)
			updated[FieldUpdatedAt] = timestamp()
			records[i] = updated
			return records, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete remove o registro pelo id. Id inexistente devolve ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.col.Mutate(func(records []Registro) ([]Registro, error) {
		for i, rec := range records {
			if rec.ID() == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}
