package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// pngHeader são os bytes mágicos de um PNG mínimo, suficientes para o
// sniffing de content type.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File[field]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveAcceptsPDF(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, "/uploads")

	header := fileHeader(t, "arquivo", "oficio.pdf", []byte("%PDF-1.4\nconteúdo"))

	ref, err := saver.Save(header, "arquivo", PolicyPDF)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "/uploads/arquivo-"))
	require.True(t, strings.HasSuffix(ref, ".pdf"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, "/uploads")

	header := fileHeader(t, "arquivo", "falso.pdf", []byte("texto disfarçado de pdf"))

	_, err := saver.Save(header, "arquivo", PolicyPDF)
	require.ErrorIs(t, err, ErrValidation)

	// Rejeição não pode deixar arquivo para trás.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	saver := NewSaver(t.TempDir(), "/uploads")

	header := fileHeader(t, "foto", "grande.png", pngHeader)
	header.Size = PolicyFoto.MaxSize + 1

	_, err := saver.Save(header, "foto", PolicyFoto)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSaveAcceptsImageForPhotoPolicy(t *testing.T) {
	saver := NewSaver(t.TempDir(), "/uploads")

	header := fileHeader(t, "foto", "perfil.png", pngHeader)

	ref, err := saver.Save(header, "foto", PolicyFoto)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "/uploads/foto-"))
}

func TestPhotoPolicyRejectsPDF(t *testing.T) {
	saver := NewSaver(t.TempDir(), "/uploads")

	header := fileHeader(t, "foto", "doc.pdf", []byte("%PDF-1.4"))

	_, err := saver.Save(header, "foto", PolicyFoto)
	require.ErrorIs(t, err, ErrValidation)
}

func TestRemoveBestEffort(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, "/uploads")

	name := "arquivo-123-abc.pdf"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))

	saver.Remove("/uploads/" + name)
	_, err := os.Stat(filepath.Join(dir, name))
	require.True(t, os.IsNotExist(err))

	// Arquivo já ausente e referências estranhas não causam pânico.
	saver.Remove("/uploads/" + name)
	saver.Remove("/outro/caminho.pdf")
	saver.Remove("")
}
