package yadisk

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ListPublicResources lists the resources the disk owner has published.
func (c *Client) ListPublicResources(ctx context.Context, opts *PublicListOptions) (*PublicResourcesList, error) {
	if opts == nil {
		opts = &PublicListOptions{}
	}
	c.logger.Info("Getting published resources")

	params := Params{
		"limit":        optInt(opts.Limit),
		"offset":       optInt(opts.Offset),
		"type":         optString(opts.Type),
		"fields":       optFields(opts.Fields),
		"preview_size": optString(opts.PreviewSize),
	}

	var list PublicResourcesList
	if err := c.getJSON(ctx, "/v1/disk/resources/public", params, &list); err != nil {
		return nil, err
	}

	c.logger.Info("Successfully retrieved published resources", zap.Int("items_count", len(list.Items)))
	return &list, nil
}

// GetPublicResource returns the metadata of a public resource by its key or
// public URL. Path selects a resource inside a public folder.
func (c *Client) GetPublicResource(ctx context.Context, publicKey string, opts *PublicMetaOptions) (*Resource, error) {
	if publicKey == "" {
		return nil, fmt.Errorf("public key is required")
	}
	if opts == nil {
		opts = &PublicMetaOptions{}
	}

	params := Params{
		"public_key":   publicKey,
		"path":         optString(opts.Path),
		"sort":         optString(opts.Sort),
		"limit":        optInt(opts.Limit),
		"offset":       optInt(opts.Offset),
		"preview_size": optString(opts.PreviewSize),
		"preview_crop": optBool(opts.PreviewCrop),
	}

	var resource Resource
	if err := c.getJSON(ctx, "/v1/disk/public/resources", params, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// GetPublicDownloadLink requests a download URL for a public resource.
func (c *Client) GetPublicDownloadLink(ctx context.Context, publicKey, path string) (*Link, error) {
	if publicKey == "" {
		return nil, fmt.Errorf("public key is required")
	}

	params := Params{
		"public_key": publicKey,
		"path":       optString(path),
	}

	var link Link
	if err := c.getJSON(ctx, "/v1/disk/public/resources/download", params, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// DownloadPublicFile returns the contents of a public file.
func (c *Client) DownloadPublicFile(ctx context.Context, publicKey, path string) ([]byte, error) {
	link, err := c.GetPublicDownloadLink(ctx, publicKey, path)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, link)
}
