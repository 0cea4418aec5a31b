// Package registro implementa o ciclo de vida comum das coleções de
// recepção, atendimentos e casos: esquema aberto, id max+1, merge raso
// em atualizações parciais.
package registro

import (
	"encoding/json"
	"time"
)

// Registro é um documento de esquema aberto. Os campos de domínio variam
// por coleção; os campos de controle (id, createdAt, createdBy, updatedAt)
// são de responsabilidade exclusiva do repositório.
type Registro map[string]any

// Campos de controle gerenciados pelo repositório.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldCreatedBy = "createdBy"
	FieldUpdatedAt = "updatedAt"
)

var metaFields = []string{FieldID, FieldCreatedAt, FieldCreatedBy, FieldUpdatedAt}

// ID devolve o identificador do registro, 0 quando ausente.
// Números vindos de JSON chegam como float64 ou json.Number.
func (r Registro) ID() int64 {
	switch v := r[FieldID].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}

// clone copia o mapa raso; valores aninhados continuam compartilhados.
func (r Registro) clone() Registro {
	out := make(Registro, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// merge aplica patch sobre o registro: só chaves presentes no patch
// sobrescrevem (string vazia explícita limpa o campo; chave ausente
// preserva o valor atual). Campos de controle nunca vêm do patch.
func (r Registro) merge(patch Registro) Registro {
	out := r.clone()
	for k, v := range patch {
		if isMetaField(k) {
			continue
		}
		out[k] = v
	}
	return out
}

func isMetaField(key string) bool {
	for _, f := range metaFields {
		if key == f {
			return true
		}
	}
	return false
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
