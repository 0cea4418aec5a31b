package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorEnvelope padroniza respostas de erro.
type ErrorEnvelope struct {
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON escreve a carga de sucesso diretamente como JSON.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// WriteInternalError loga a causa e devolve mensagem genérica, sem vazar
// caminhos internos ao cliente.
func WriteInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("erro interno")
	WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno")
}
