// Package netx fetches objects through presigned S3 URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxObjectSize caps how much DownloadPresignedURL reads.
const MaxObjectSize = 32 << 20

// DownloadPresignedURL GETs url and returns the body. Any status other than
// 200 is an error that carries the response body.
func DownloadPresignedURL(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxObjectSize+1))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(body))
	}
	if len(body) > MaxObjectSize {
		return nil, fmt.Errorf("download failed: object larger than %d bytes", MaxObjectSize)
	}
	return body, nil
}
