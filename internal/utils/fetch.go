package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RemoteFetcher downloads remote files referenced by seed bundles so their
// images can be re-ingested through the optimization pipeline.
type RemoteFetcher struct {
	client *http.Client
}

func NewRemoteFetcher() *RemoteFetcher {
	return &RemoteFetcher{client: http.DefaultClient}
}

func (f *RemoteFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
