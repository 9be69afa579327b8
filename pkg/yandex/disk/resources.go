package yadisk

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// GetDiskInformation returns capacity and owner data of the disk.
func (c *Client) GetDiskInformation(ctx context.Context) (*DiskInfo, error) {
	c.logger.Info("Getting disk information")

	var info DiskInfo
	if err := c.getJSON(ctx, "/v1/disk", nil, &info); err != nil {
		return nil, err
	}

	c.logger.Info("Successfully retrieved disk information",
		zap.Int64("total_space", info.TotalSpace),
		zap.Int64("used_space", info.UsedSpace))

	return &info, nil
}

// GetMetaInformation returns the metadata of the resource at path. For a
// folder the listing is in Embedded and can be paged with Limit and Offset.
func (c *Client) GetMetaInformation(ctx context.Context, path string, opts *MetaOptions) (*Resource, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if opts == nil {
		opts = &MetaOptions{}
	}
	c.logger.Debug("Getting resource metadata", zap.String("path", path))

	params := Params{
		"path":         path,
		"fields":       optFields(opts.Fields),
		"limit":        optInt(opts.Limit),
		"offset":       optInt(opts.Offset),
		"preview_crop": optBool(opts.PreviewCrop),
		"preview_size": optString(opts.PreviewSize),
		"sort":         optString(opts.Sort),
	}

	var resource Resource
	if err := c.getJSON(ctx, "/v1/disk/resources", params, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListFiles returns a flat, paged list of all files on the disk.
func (c *Client) ListFiles(ctx context.Context, opts *FilesOptions) (*FilesResourceList, error) {
	if opts == nil {
		opts = &FilesOptions{}
	}
	c.logger.Info("Getting list of files",
		zap.Int("limit", opts.Limit),
		zap.Int("offset", opts.Offset))

	params := Params{
		"limit":        optInt(opts.Limit),
		"media_type":   optFields(opts.MediaType),
		"offset":       optInt(opts.Offset),
		"fields":       optFields(opts.Fields),
		"preview_size": optString(opts.PreviewSize),
		"preview_crop": optBool(opts.PreviewCrop),
	}

	var list FilesResourceList
	if err := c.getJSON(ctx, "/v1/disk/resources/files", params, &list); err != nil {
		return nil, err
	}

	c.logger.Info("Successfully retrieved list of files", zap.Int("items_count", len(list.Items)))
	return &list, nil
}

// LastUploaded returns the most recently uploaded files, newest first.
func (c *Client) LastUploaded(ctx context.Context, opts *LastUploadedOptions) (*LastUploadedResourceList, error) {
	if opts == nil {
		opts = &LastUploadedOptions{}
	}

	params := Params{
		"limit":        optInt(opts.Limit),
		"media_type":   optFields(opts.MediaType),
		"fields":       optFields(opts.Fields),
		"preview_size": optString(opts.PreviewSize),
		"preview_crop": optBool(opts.PreviewCrop),
	}

	var list LastUploadedResourceList
	if err := c.getJSON(ctx, "/v1/disk/resources/last-uploaded", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Copy copies the resource at from to path, waiting for the operation when
// the API runs it asynchronously.
func (c *Client) Copy(ctx context.Context, from, path string, opts *TransferOptions) (*OperationResult, error) {
	return c.transfer(ctx, "/v1/disk/resources/copy", from, path, opts)
}

// Move moves the resource at from to path, waiting for the operation when
// the API runs it asynchronously.
func (c *Client) Move(ctx context.Context, from, path string, opts *TransferOptions) (*OperationResult, error) {
	return c.transfer(ctx, "/v1/disk/resources/move", from, path, opts)
}

func (c *Client) transfer(ctx context.Context, endpoint, from, path string, opts *TransferOptions) (*OperationResult, error) {
	if from == "" || path == "" {
		return nil, fmt.Errorf("source and destination paths are required")
	}
	if opts == nil {
		opts = &TransferOptions{}
	}
	c.logger.Info("Transferring resource",
		zap.String("endpoint", endpoint),
		zap.String("from", from),
		zap.String("path", path))

	params := Params{
		"from":      from,
		"path":      path,
		"overwrite": optBool(opts.Overwrite),
		"fields":    optFields(opts.Fields),
	}

	var link Link
	if _, err := c.do(ctx, request{method: http.MethodPost, endpoint: endpoint, params: params}, &link); err != nil {
		return nil, err
	}
	return c.followOperation(ctx, &link)
}

// Delete removes the resource at path, to the trash unless Permanently is
// set. Link is nil in the result when the API answered without a body.
func (c *Client) Delete(ctx context.Context, path string, opts *DeleteOptions) (*OperationResult, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if opts == nil {
		opts = &DeleteOptions{}
	}
	c.logger.Info("Deleting resource",
		zap.String("path", path),
		zap.Bool("permanently", opts.Permanently))

	params := Params{
		"path":        path,
		"permanently": optBool(opts.Permanently),
		"fields":      optFields(opts.Fields),
	}

	var link Link
	if _, err := c.do(ctx, request{method: http.MethodDelete, endpoint: "/v1/disk/resources", params: params}, &link); err != nil {
		return nil, err
	}
	if link.Href == "" {
		return &OperationResult{}, nil
	}
	return c.followOperation(ctx, &link)
}

// Mkdir creates the folder at path. The parent folder must exist.
func (c *Client) Mkdir(ctx context.Context, path string, fields []string) (*Link, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	c.logger.Info("Creating folder", zap.String("path", path))

	params := Params{
		"path":   path,
		"fields": optFields(fields),
	}

	var link Link
	if _, err := c.do(ctx, request{method: http.MethodPut, endpoint: "/v1/disk/resources", params: params}, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Publish opens public access to the resource at path.
func (c *Client) Publish(ctx context.Context, path string) (*Link, error) {
	return c.publication(ctx, "/v1/disk/resources/publish", path)
}

// Unpublish closes public access to the resource at path.
func (c *Client) Unpublish(ctx context.Context, path string) (*Link, error) {
	return c.publication(ctx, "/v1/disk/resources/unpublish", path)
}

func (c *Client) publication(ctx context.Context, endpoint, path string) (*Link, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	c.logger.Info("Changing public access", zap.String("endpoint", endpoint), zap.String("path", path))

	var link Link
	if _, err := c.do(ctx, request{method: http.MethodPut, endpoint: endpoint, params: Params{"path": path}}, &link); err != nil {
		return nil, err
	}
	return &link, nil
}
