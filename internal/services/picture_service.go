package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"identity/pkg/utils"
)

// ImageFetcher is the outbound download used to cache profile pictures.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

type httpImageFetcher struct {
	client *http.Client
}

func NewHTTPImageFetcher(timeout time.Duration) ImageFetcher {
	return &httpImageFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *httpImageFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// PictureStore persists a remote picture and returns the public URL it is served from.
type PictureStore interface {
	Save(ctx context.Context, url string, userID uuid.UUID) (string, error)
}

type filePictureStore struct {
	fetcher   ImageFetcher
	publicDir string
	baseURL   string
}

func NewFilePictureStore(fetcher ImageFetcher, publicDir, baseURL string) PictureStore {
	return &filePictureStore{
		fetcher:   fetcher,
		publicDir: publicDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func ProfilePicturePath(userID uuid.UUID) string {
	id := userID.String()
	return filepath.Join("png", "profile", id, id+".png")
}

func (s *filePictureStore) Save(ctx context.Context, url string, userID uuid.UUID) (string, error) {
	rel := ProfilePicturePath(userID)
	target := filepath.Join(s.publicDir, rel)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", utils.ExternalFetch(err)
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", utils.ExternalFetch(err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(target), ".picture-*")
	if err != nil {
		return "", utils.ExternalFetch(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", utils.ExternalFetch(err)
	}
	if err := tmp.Close(); err != nil {
		return "", utils.ExternalFetch(err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", utils.ExternalFetch(err)
	}

	return s.baseURL + "/static/" + filepath.ToSlash(rel), nil
}
