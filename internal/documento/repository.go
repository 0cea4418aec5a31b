package documento

import (
	"context"
	"errors"
	"time"

	"github.com/conselhodigital/tutelar/internal/store"
	"github.com/conselhodigital/tutelar/internal/upload"
)

// ErrNotFound é retornado quando nenhum documento é encontrado.
var ErrNotFound = errors.New("documento não encontrado")

// Repository guarda os documentos e cuida dos arquivos que os acompanham.
type Repository struct {
	col     *store.Collection[Documento]
	uploads *upload.Saver
}

// NewRepository abre a coleção "documentos" no diretório de dados.
func NewRepository(dataDir string, uploads *upload.Saver) (*Repository, error) {
	col, err := store.NewCollection[Documento](dataDir, "documentos")
	if err != nil {
		return nil, err
	}
	return &Repository{col: col, uploads: uploads}, nil
}

// List devolve todos os documentos.
func (r *Repository) List(ctx context.Context) ([]Documento, error) {
	return r.col.All()
}

// Create insere o documento apontando para um arquivo já validado e
// gravado pelo chamador.
func (r *Repository) Create(ctx context.Context, doc Documento) (Documento, error) {
	err := r.col.Mutate(func(docs []Documento) ([]Documento, error) {
		doc.ID = store.NextID(docs, func(d Documento) int64 { return d.ID })
		doc.CreatedAt = time.Now().UTC()
		return append(docs, doc), nil
	})
	if err != nil {
		return Documento{}, err
	}
	return doc, nil
}

// Delete remove o registro e apaga o arquivo em melhor esforço: arquivo
// já ausente não impede a remoção do registro.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.col.Mutate(func(docs []Documento) ([]Documento, error) {
		for i, doc := range docs {
			if doc.ID != id {
				continue
			}
			if doc.Arquivo != "" {
				r.uploads.Remove(doc.Arquivo)
			}
			return append(docs[:i], docs[i+1:]...), nil
		}
		return nil, ErrNotFound
	})
}
