// Package store persiste coleções de registros como arquivos JSON
// (um array de documentos por coleção), substituindo um banco de dados
// para a escala de um único conselho.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Collection lê e grava uma coleção persistida em <dir>/<nome>.json.
//
// Toda mutação é um ciclo completo de ler-modificar-gravar serializado
// por um mutex próprio da coleção: dentro do processo não há lost update
// nem ids duplicados. Escritores de outros processos não são suportados.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

// NewCollection aponta para o arquivo da coleção, criando o diretório
// de dados na primeira utilização.
func NewCollection[T any](dir, name string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de dados: %w", err)
	}
	return &Collection[T]{path: filepath.Join(dir, name+".json")}, nil
}

// All devolve todos os registros da coleção. Arquivo ausente ou
// ilegível resulta em coleção vazia, nunca em erro.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(), nil
}

// Mutate executa fn sob o lock da coleção e persiste o resultado.
// fn recebe o estado atual e devolve o estado completo a gravar.
func (c *Collection[T]) Mutate(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := fn(c.read())
	if err != nil {
		return err
	}
	return c.write(records)
}

// Replace grava a coleção inteira, substituindo o conteúdo atual.
func (c *Collection[T]) Replace(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(records)
}

func (c *Collection[T]) read() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Str("arquivo", filepath.Base(c.path)).Err(err).
			Msg("coleção ilegível, tratando como vazia")
		return nil
	}
	return records
}

// write grava o array completo em arquivo temporário e faz rename
// atômico, evitando coleção truncada em caso de falha no meio da escrita.
func (c *Collection[T]) write(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar coleção: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("gravar coleção: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("gravar coleção: %w", err)
	}
	return nil
}

// NextID calcula o próximo id: max(ids existentes)+1, ou 1 para coleção
// vazia. Ids continuam únicos porém não contíguos após remoções.
func NextID[T any](records []T, id func(T) int64) int64 {
	var max int64
	for _, rec := range records {
		if v := id(rec); v > max {
			max = v
		}
	}
	return max + 1
}
