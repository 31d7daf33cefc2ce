package accuracy

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// NewHTTPClient returns the client used to fetch remote references,
// retrying transient failures a few times.
func NewHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	return client
}

// openReference opens a local path, a file:// URL,
// or an http(s) URL.
func openReference(ctx context.Context, client *retryablehttp.Client, ref string) (io.ReadCloser, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 { // windows drive letters
		return os.Open(ref)
	}
	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, errors.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, errors.Errorf("unsupported reference scheme %q", u.Scheme)
	}
}
