// Package documentos guarda os arquivos anexados ao formulário num bucket
// gocloud (mem://, file:// ou s3://)
package documentos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/corretora-saude/api-formulario/internal/formulario"
)

// TamanhoMaximo de cada arquivo enviado
const TamanhoMaximo = 10 << 20

var (
	ErrArquivoGrande    = errors.New("arquivo excede o tamanho máximo")
	ErrTipoNaoPermitido = errors.New("tipo de arquivo não permitido")
	ErrArquivoVazio     = errors.New("arquivo vazio")
	ErrForaDoBucket     = errors.New("arquivo não pertence a este armazenamento")

	tipos = map[string]string{
		".pdf":  "application/pdf",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".heic": "image/heic",
	}
)

// Storage grava os anexos e monta a URL pública de cada um
type Storage struct {
	bucket    *blob.Bucket
	urlPublic string
	prefix    string
}

func NewStorage(ctx context.Context, bucketURL, urlPublica string) (*Storage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	return &Storage{
		bucket:    bucket,
		urlPublic: strings.TrimRight(urlPublica, "/"),
		prefix:    "sessoes/",
	}, nil
}

// Upload grava o conteúdo sob a sessão e a categoria e devolve o arquivo
// pronto para ser anexado
func (s *Storage) Upload(
	ctx context.Context, sessaoID, categoria, nome string, conteudo io.Reader,
) (formulario.Arquivo, error) {
	if !formulario.CategoriaValida(categoria) {
		return formulario.Arquivo{}, fmt.Errorf("%w: %q", formulario.ErrCategoriaInvalida, categoria)
	}
	nome = path.Base(strings.ReplaceAll(strings.TrimSpace(nome), "\\", "/"))
	tipo, ok := tipos[strings.ToLower(path.Ext(nome))]
	if !ok {
		return formulario.Arquivo{}, fmt.Errorf("%w: %s", ErrTipoNaoPermitido, nome)
	}

	data, err := io.ReadAll(io.LimitReader(conteudo, TamanhoMaximo+1))
	if err != nil {
		return formulario.Arquivo{}, err
	}
	switch {
	case len(data) == 0:
		return formulario.Arquivo{}, ErrArquivoVazio
	case len(data) > TamanhoMaximo:
		return formulario.Arquivo{}, ErrArquivoGrande
	}

	key := s.prefix + path.Join(sessaoID, categoria, uuid.NewString()+"-"+nome)
	opts := &blob.WriterOptions{ContentType: tipo}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return formulario.Arquivo{}, err
	}
	return formulario.Arquivo{URL: s.urlPara(key), Nome: nome}, nil
}

// Remover apaga o objeto do arquivo; arquivo já ausente não é erro
func (s *Storage) Remover(ctx context.Context, a formulario.Arquivo) error {
	key, ok := s.keyPara(a.URL)
	if !ok {
		return fmt.Errorf("%w: %s", ErrForaDoBucket, a.URL)
	}
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	return err
}

// Ler devolve o conteúdo gravado para o arquivo
func (s *Storage) Ler(ctx context.Context, a formulario.Arquivo) ([]byte, error) {
	key, ok := s.keyPara(a.URL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrForaDoBucket, a.URL)
	}
	return s.bucket.ReadAll(ctx, key)
}

func (s *Storage) Close() error {
	return s.bucket.Close()
}

func (s *Storage) urlPara(key string) string {
	if s.urlPublic == "" {
		return "/" + key
	}
	return s.urlPublic + "/" + key
}

func (s *Storage) keyPara(url string) (string, bool) {
	base := s.urlPublic + "/"
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	key := strings.TrimPrefix(url, base)
	return key, strings.HasPrefix(key, s.prefix)
}
