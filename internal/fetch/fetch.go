// Package fetch downloads graph documents published elsewhere so they can be imported.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/corpix/uarand"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/store"
)

// DefaultMaxBytes caps a downloaded document.
const DefaultMaxBytes = 32 << 20

type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

func New(client *http.Client, maxBytes int64) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Graph downloads the graph document at rawURL and checks that it decodes. The file
// is named after the last path segment of the URL, or after its host when the path
// is empty.
func (f *Fetcher) Graph(ctx context.Context, rawURL string) (store.UploadedFile, error) {
	name, err := fileName(rawURL)
	if err != nil {
		return store.UploadedFile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return store.UploadedFile{}, errors.Wrapf(err, "request %s", rawURL)
	}
	req.Header.Set("User-Agent", uarand.GetRandom())
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return store.UploadedFile{}, errors.Wrapf(err, "get %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Newf("got non-OK status code: %v", resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			err = errors.Mark(err, errors.ErrNotFound)
		}
		return store.UploadedFile{}, errors.Wrapf(err, "get %s", rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return store.UploadedFile{}, errors.Wrapf(err, "read %s", rawURL)
	}
	if int64(len(data)) > f.maxBytes {
		return store.UploadedFile{}, errors.InvalidRequestf("%s is larger than %d bytes", rawURL, f.maxBytes)
	}
	if _, err := graphs.Parse(data); err != nil {
		return store.UploadedFile{}, errors.Wrapf(err, "%s", rawURL)
	}

	return store.UploadedFile{Name: name, Data: data}, nil
}

// fileName picks a file name for a downloaded document.
// For example: https://example.com/graphs/gazeta.json -> gazeta.json
// and https://example.com -> example.com.json
func fileName(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "parse %q", rawURL), errors.ErrInvalidRequest)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", errors.InvalidRequestf("%q is not an http(s) URL", rawURL)
	}
	if parsedURL.Hostname() == "" {
		return "", errors.InvalidRequestf("%q has no host", rawURL)
	}

	base := path.Base(strings.TrimSuffix(parsedURL.Path, "/"))
	if base == "." || base == "/" || base == "" {
		return parsedURL.Hostname() + ".json", nil
	}
	if path.Ext(base) == "" {
		base += ".json"
	}
	return base, nil
}
