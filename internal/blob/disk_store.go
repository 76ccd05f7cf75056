package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/samber/lo"
)

// PathPrefix is where the web server exposes the stored files.
const PathPrefix = "/files/"

type diskStore struct {
	root    string
	baseURL *url.URL
}

// NewDisk stores blobs under root and builds URLs as <publicBaseURL>/files/<key>.
func NewDisk(root, publicBaseURL string) (port.BlobStore, error) {
	if root == "" {
		return nil, errors.New("root is empty")
	}

	baseURL, err := url.Parse(publicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse[%s]: %w", publicBaseURL, err)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &diskStore{
		root:    root,
		baseURL: baseURL,
	}, nil
}

func (s *diskStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("io.Copy: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("os.Rename: %w", err)
	}

	return s.baseURL.JoinPath(PathPrefix, clean).String(), nil
}

func (s *diskStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean, err := cleanKey(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove: %w", err)
	}

	return nil
}

func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("key[%s] is not valid", key)
	}
	return clean, nil
}

// Key builds a storage key with a random suffix before the extension,
// so uploads with the same name never overwrite each other.
func Key(prefix, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		name = "upload"
	}

	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	suffix := lo.RandomString(12, lo.AlphanumericCharset)

	return path.Join(prefix, fmt.Sprintf("%s-%s%s", stem, suffix, ext))
}
