package usuario

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/conselhodigital/tutelar/internal/auth"
)

// ErrInvalidCredentials indica falha na autenticação.
var ErrInvalidCredentials = errors.New("usuário ou senha inválidos")

// Service concentra autenticação e operações de conta.
type Service struct {
	repo *Repository
	jwt  *auth.JWTManager
}

// NewService cria novo serviço.
func NewService(repo *Repository, jwtMgr *auth.JWTManager) *Service {
	return &Service{repo: repo, jwt: jwtMgr}
}

// JWT expõe o gerenciador de JWT (útil em middlewares).
func (s *Service) JWT() *auth.JWTManager {
	return s.jwt
}

// LoginResult representa o retorno da autenticação.
type LoginResult struct {
	Token string `json:"token"`
	User  Perfil `json:"user"`
}

// Login verifica as credenciais e emite o token de acesso. Usuário
// inexistente e senha errada produzem a mesma resposta; não existe
// política de bloqueio por tentativas.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Msg("login: usuário não encontrado")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.Verify(password, user.SenhaHash)
	if err != nil {
		log.Warn().Err(err).Msg("login: verificação de senha falhou")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Perfil()}, nil
}

// Me devolve o perfil do usuário autenticado.
func (s *Service) Me(ctx context.Context, id int64) (Perfil, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Perfil{}, err
	}
	return user.Perfil(), nil
}

// UpdateProfile aplica o patch e devolve o perfil resultante.
func (s *Service) UpdateProfile(ctx context.Context, id int64, patch PerfilPatch) (Perfil, error) {
	user, err := s.repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		return Perfil{}, err
	}
	return user.Perfil(), nil
}
