package yadisk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	httpclient "github.com/natserract/yadisk/pkg/http"
	"go.uber.org/zap"
)

// request describes one call to the API. Endpoint is relative to the base
// URL unless absolute is set, in which case it is used as is.
type request struct {
	method      string
	endpoint    string
	params      Params
	absolute    bool
	body        []byte
	contentType string
}

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

func isSuccess(statusCode int) bool {
	return statusCode == http.StatusOK ||
		statusCode == http.StatusCreated ||
		statusCode == http.StatusAccepted
}

// do sends r and returns the raw response body. When out is not nil the body
// is decoded into it as JSON. Every failure is logged here, so callers only
// need to propagate the error.
func (c *Client) do(ctx context.Context, r request, out any) ([]byte, error) {
	if !supportedMethods[r.method] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, r.method)
	}

	target, err := c.resolve(r)
	if err != nil {
		c.logger.Error("Failed to build request URL",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.Error(err))
		return nil, &RequestError{Method: r.method, Endpoint: r.endpoint, Err: err}
	}

	headers := map[string]string{}
	if c.ownsURL(target) {
		headers["Authorization"] = c.authorization
	}
	if r.contentType != "" {
		headers["Content-Type"] = r.contentType
	}

	resp, err := c.httpClient.Do(httpclient.RequestOptions{
		Method:  r.method,
		URL:     target,
		Headers: headers,
		Body:    r.body,
		Context: ctx,
	})
	if err != nil {
		c.logger.Error("Connection error while making request",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.Error(err))
		return nil, &TransportError{Method: r.method, Endpoint: r.endpoint, Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		c.logger.Error("Error while making request",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.String("response", string(resp.Body)),
			zap.Int("status_code", resp.StatusCode))
		return nil, newAPIError(r.method, r.endpoint, resp.StatusCode, resp.Body)
	}

	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			c.logger.Error("Failed to parse response",
				zap.String("method", r.method),
				zap.String("endpoint", r.endpoint),
				zap.Int("status_code", resp.StatusCode),
				zap.Error(err))
			return nil, &DecodeError{Method: r.method, Endpoint: r.endpoint, Err: err}
		}
	}

	return resp.Body, nil
}

func (c *Client) resolve(r request) (string, error) {
	query := r.params.Values()
	if r.absolute {
		return httpclient.MergeQuery(r.endpoint, query)
	}
	return httpclient.BuildURL(c.baseURL.String(), r.endpoint, query)
}

// ownsURL reports whether target is served by the API host. Upload and
// download links point at storage hosts that must not receive the token.
func (c *Client) ownsURL(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return httpclient.SameHost(c.baseURL, u)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params Params, out any) error {
	_, err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint, params: params}, out)
	return err
}
