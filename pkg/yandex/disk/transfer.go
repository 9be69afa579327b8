package yadisk

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// GetUploadLink requests a URL the file at path can be uploaded to.
func (c *Client) GetUploadLink(ctx context.Context, path string, overwrite bool, fields []string) (*Link, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	params := Params{
		"path":      path,
		"overwrite": overwrite,
		"fields":    optFields(fields),
	}

	var link Link
	if err := c.getJSON(ctx, "/v1/disk/resources/upload", params, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// UploadFile stores the contents of data at path. The body is read fully
// into memory before it is sent.
func (c *Client) UploadFile(ctx context.Context, path string, data io.Reader, overwrite bool) error {
	payload, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("failed to read upload payload: %w", err)
	}

	link, err := c.GetUploadLink(ctx, path, overwrite, nil)
	if err != nil {
		return err
	}

	c.logger.Info("Uploading file",
		zap.String("path", path),
		zap.Int("size", len(payload)))

	method := link.Method
	if method == "" {
		method = http.MethodPut
	}
	_, err = c.do(ctx, request{
		method:      method,
		endpoint:    link.Href,
		absolute:    true,
		body:        payload,
		contentType: "application/octet-stream",
	}, nil)
	if err != nil {
		return err
	}

	c.logger.Info("Successfully uploaded file", zap.String("path", path))
	return nil
}

// UploadFromURL asks the API to fetch url into path and waits for the
// download operation to finish.
func (c *Client) UploadFromURL(ctx context.Context, sourceURL, path string, disableRedirects bool) (*OperationResult, error) {
	if sourceURL == "" || path == "" {
		return nil, fmt.Errorf("source URL and path are required")
	}
	c.logger.Info("Uploading file from URL", zap.String("url", sourceURL), zap.String("path", path))

	params := Params{
		"url":               sourceURL,
		"path":              path,
		"disable_redirects": optBool(disableRedirects),
	}

	var link Link
	if _, err := c.do(ctx, request{method: http.MethodPost, endpoint: "/v1/disk/resources/upload", params: params}, &link); err != nil {
		return nil, err
	}
	return c.followOperation(ctx, &link)
}

// GetDownloadLink requests a URL the file at path can be downloaded from.
func (c *Client) GetDownloadLink(ctx context.Context, path string, fields []string) (*Link, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	params := Params{
		"path":   path,
		"fields": optFields(fields),
	}

	var link Link
	if err := c.getJSON(ctx, "/v1/disk/resources/download", params, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// DownloadFile returns the contents of the file at path.
func (c *Client) DownloadFile(ctx context.Context, path string) ([]byte, error) {
	link, err := c.GetDownloadLink(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, link)
}

func (c *Client) fetch(ctx context.Context, link *Link) ([]byte, error) {
	if link.Href == "" {
		return nil, fmt.Errorf("download link has no href")
	}
	c.logger.Debug("Downloading file", zap.String("href", link.Href))

	body, err := c.do(ctx, request{method: http.MethodGet, endpoint: link.Href, absolute: true}, nil)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Successfully downloaded file", zap.Int("size", len(body)))
	return body, nil
}
