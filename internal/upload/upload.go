// Package upload valida e persiste anexos de formulários multipart.
// A validação acontece antes de qualquer mutação de registro: um anexo
// rejeitado nunca deixa registro parcial nem arquivo órfão.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrValidation marca rejeições de tipo ou tamanho de arquivo.
var ErrValidation = errors.New("arquivo rejeitado")

// Policy define o que uma rota aceita como anexo.
type Policy struct {
	// MaxSize em bytes.
	MaxSize int64
	// AllowedTypes são content types detectados no conteúdo do arquivo.
	AllowedTypes []string
	// Descricao aparece na mensagem de rejeição.
	Descricao string
}

// PolicyPDF aceita apenas PDFs de até 10 MiB (documentos de referência).
var PolicyPDF = Policy{
	MaxSize:      10 << 20,
	AllowedTypes: []string{"application/pdf"},
	Descricao:    "apenas arquivos PDF são permitidos",
}

// PolicyFoto aceita imagens raster de até 5 MiB (foto de perfil).
var PolicyFoto = Policy{
	MaxSize:      5 << 20,
	AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	Descricao:    "apenas imagens são permitidas (JPEG, PNG, GIF, WebP)",
}

// Saver persiste anexos validados no diretório de uploads e devolve a
// referência estável servida pela rota estática.
type Saver struct {
	dir    string
	prefix string
}

// NewSaver aponta para o diretório de armazenamento. O diretório é
// criado na primeira gravação.
func NewSaver(dir, publicPrefix string) *Saver {
	return &Saver{dir: dir, prefix: strings.TrimSuffix(publicPrefix, "/")}
}

// Save valida o anexo contra a política e o grava sob nome resistente a
// colisão (campo-timestamp-aleatório.ext). Devolve a referência pública.
func (s *Saver) Save(header *multipart.FileHeader, field string, policy Policy) (string, error) {
	if header.Size > policy.MaxSize {
		return "", fmt.Errorf("%w: arquivo excede o limite de %d MB", ErrValidation, policy.MaxSize>>20)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("abrir anexo: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, policy.MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("ler anexo: %w", err)
	}
	if int64(len(data)) > policy.MaxSize {
		return "", fmt.Errorf("%w: arquivo excede o limite de %d MB", ErrValidation, policy.MaxSize>>20)
	}

	// O tipo vem do conteúdo, não do header declarado pelo cliente.
	if !allowed(detectType(data), policy.AllowedTypes) {
		return "", fmt.Errorf("%w: %s", ErrValidation, policy.Descricao)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("criar diretório de uploads: %w", err)
	}

	name := fmt.Sprintf("%s-%d-%s%s",
		field,
		time.Now().UnixMilli(),
		strings.Split(uuid.NewString(), "-")[0],
		strings.ToLower(filepath.Ext(header.Filename)),
	)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("gravar anexo: %w", err)
	}

	return s.prefix + "/" + name, nil
}

// Remove apaga o arquivo referenciado, em modo melhor esforço: referência
// fora do prefixo ou arquivo já ausente não são erros.
func (s *Saver) Remove(ref string) {
	if !strings.HasPrefix(ref, s.prefix+"/") {
		return
	}
	// Nunca sair do diretório de uploads.
	name := filepath.Base(strings.TrimPrefix(ref, s.prefix+"/"))
	if name == "" || name == "." || name == ".." {
		return
	}
	_ = os.Remove(filepath.Join(s.dir, name))
}

func detectType(data []byte) string {
	contentType := http.DetectContentType(data)
	// DetectContentType pode anexar parâmetros (ex.: charset).
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}

func allowed(contentType string, allowedTypes []string) bool {
	for _, t := range allowedTypes {
		if contentType == t {
			return true
		}
	}
	return false
}
