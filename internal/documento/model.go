package documento

import "time"

// Documento é um documento de referência (modelos de ofício, termos,
// notificações) com o PDF armazenado no diretório de uploads.
type Documento struct {
	ID          int64     `json:"id"`
	Nome        string    `json:"nome"`
	Tipo        string    `json:"tipo"`
	Descricao   string    `json:"descricao"`
	Arquivo     string    `json:"arquivo"`
	NomeArquivo string    `json:"nomeArquivo"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   int64     `json:"createdBy"`
}

// TipoPadrao é usado quando a requisição não informa o tipo.
const TipoPadrao = "modelo"
