package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxBody caps how much of a response Fetch will read.
const maxBody = 1 << 20

// Fetch GETs url and returns the response body. Any status other than
// 200 OK is an error carrying the status and body.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: %s; body: %s", resp.Status, string(b))
	}
	return b, nil
}
