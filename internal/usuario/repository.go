package usuario

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/conselhodigital/tutelar/internal/auth"
	"github.com/conselhodigital/tutelar/internal/store"
)

// ErrNotFound é retornado quando nenhum usuário é encontrado.
var ErrNotFound = errors.New("usuário não encontrado")

// Repository guarda as contas na coleção "users".
type Repository struct {
	col *store.Collection[Usuario]
}

// NewRepository abre a coleção de usuários no diretório de dados.
func NewRepository(dataDir string) (*Repository, error) {
	col, err := store.NewCollection[Usuario](dataDir, "users")
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

// Seed cria a conta administradora padrão quando a coleção está vazia
// (primeira subida). A rotação da senha padrão é responsabilidade do
// operador, via cmd/hashpass.
func (r *Repository) Seed(ctx context.Context, username, password string) error {
	return r.col.Mutate(func(users []Usuario) ([]Usuario, error) {
		if len(users) > 0 {
			return users, nil
		}

		hash, err := auth.Hash(password)
		if err != nil {
			return nil, err
		}

		log.Info().Str("username", username).Msg("criando conta administradora inicial")
		return []Usuario{{
			ID:           1,
			Username:     username,
			SenhaHash:    hash,
			NomeCompleto: "Administrador",
			Telefone:     "(00) 00000-0000",
			Foto:         "",
			Role:         "admin",
			CreatedAt:    time.Now().UTC(),
		}}, nil
	})
}

// FindByUsername localiza a conta pelo username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (Usuario, error) {
	users, err := r.col.All()
	if err != nil {
		return Usuario{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return Usuario{}, ErrNotFound
}

// FindByID localiza a conta pelo id.
func (r *Repository) FindByID(ctx context.Context, id int64) (Usuario, error) {
	users, err := r.col.All()
	if err != nil {
		return Usuario{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return Usuario{}, ErrNotFound
}

// UpdateProfile aplica o patch de perfil: campo ausente fica intocado,
// string vazia explícita limpa o valor. Senha e papel nunca mudam por
// aqui.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, patch PerfilPatch) (Usuario, error) {
	var updated Usuario

	err := r.col.Mutate(func(users []Usuario) ([]Usuario, error) {
		for i, u := range users {
			if u.ID != id {
				continue
			}
			if patch.NomeCompleto != nil {
				u.NomeCompleto = *patch.NomeCompleto
			}
			if patch.Telefone != nil {
				u.Telefone = *patch.Telefone
			}
			if patch.Foto != nil {
				u.Foto = *patch.Foto
			}
			users[i] = u
			updated = u
			return users, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Usuario{}, err
	}
	return updated, nil
}
