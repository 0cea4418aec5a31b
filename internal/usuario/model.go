package usuario

import "time"

// Usuario é a conta persistida na coleção de usuários. O hash da senha
// fica no campo "password" do arquivo, mas nunca sai pela API.
type Usuario struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	SenhaHash    string    `json:"password"`
	NomeCompleto string    `json:"nomeCompleto"`
	Telefone     string    `json:"telefone"`
	Foto         string    `json:"foto"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Perfil é a projeção pública do usuário.
type Perfil struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	NomeCompleto string `json:"nomeCompleto"`
	Telefone     string `json:"telefone"`
	Foto         string `json:"foto"`
	Role         string `json:"role"`
}

// Perfil devolve a projeção sem credenciais.
func (u Usuario) Perfil() Perfil {
	return Perfil{
		ID:           u.ID,
		Username:     u.Username,
		NomeCompleto: u.NomeCompleto,
		Telefone:     u.Telefone,
		Foto:         u.Foto,
		Role:         u.Role,
	}
}

// PerfilPatch carrega apenas os campos presentes na requisição de
// atualização: nil preserva o valor atual, string vazia limpa o campo.
type PerfilPatch struct {
	NomeCompleto *string
	Telefone     *string
	Foto         *string
}
