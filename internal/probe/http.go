package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"testctl/internal/check"
)

// maxBodyBytes bounds how much of a response body is searched.
const maxBodyBytes = 1 << 20

// HTTP requests URL and checks the status code and, optionally, the body.
// Transport errors are failures of the probed service, not of the probe.
type HTTP struct {
	URL          string
	Method       string
	ExpectStatus int
	Contains     string
	Client       *http.Client
}

// NewHTTP creates an HTTP probe with a pooled go-cleanhttp client.
func NewHTTP(url, method string, expectStatus int, contains string) *HTTP {
	if method == "" {
		method = http.MethodGet
	}
	if expectStatus == 0 {
		expectStatus = http.StatusOK
	}
	return &HTTP{
		URL:          url,
		Method:       strings.ToUpper(method),
		ExpectStatus: expectStatus,
		Contains:     contains,
		Client:       cleanhttp.DefaultPooledClient(),
	}
}

// Invoke performs the request.
func (h *HTTP) Invoke(ctx context.Context) (check.Verdict, error) {
	req, err := http.NewRequestWithContext(ctx, h.Method, h.URL, nil)
	if err != nil {
		return check.Verdict{}, fmt.Errorf("building request: %w", err)
	}

	client := h.Client
	if client == nil {
		client = cleanhttp.DefaultClient()
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return check.Verdict{}, ctxErr
		}
		return check.Fail("%s %s: %v", h.Method, h.URL, err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != h.ExpectStatus {
		return check.Fail("%s %s: status %d, want %d", h.Method, h.URL, resp.StatusCode, h.ExpectStatus), nil
	}

	if h.Contains != "" {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return check.Fail("%s %s: reading body: %v", h.Method, h.URL, err), nil
		}
		if !strings.Contains(string(body), h.Contains) {
			return check.Fail("%s %s: body does not contain %q", h.Method, h.URL, h.Contains), nil
		}
	}

	return check.Pass(fmt.Sprintf("%s %s: %s", h.Method, h.URL, resp.Status)), nil
}
