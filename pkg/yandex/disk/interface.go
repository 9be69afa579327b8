package yadisk

import (
	"context"
	"io"
)

// DiskClient defines the interface for Yandex Disk API operations
type DiskClient interface {
	// GetDiskInformation retrieves capacity and owner data
	GetDiskInformation(ctx context.Context) (*DiskInfo, error)

	// GetMetaInformation retrieves resource metadata, including folder listings
	GetMetaInformation(ctx context.Context, path string, opts *MetaOptions) (*Resource, error)

	ListFiles(ctx context.Context, opts *FilesOptions) (*FilesResourceList, error)
	LastUploaded(ctx context.Context, opts *LastUploadedOptions) (*LastUploadedResourceList, error)

	GetUploadLink(ctx context.Context, path string, overwrite bool, fields []string) (*Link, error)
	UploadFile(ctx context.Context, path string, data io.Reader, overwrite bool) error
	UploadFromURL(ctx context.Context, sourceURL, path string, disableRedirects bool) (*OperationResult, error)
	GetDownloadLink(ctx context.Context, path string, fields []string) (*Link, error)
	DownloadFile(ctx context.Context, path string) ([]byte, error)

	Copy(ctx context.Context, from, path string, opts *TransferOptions) (*OperationResult, error)
	Move(ctx context.Context, from, path string, opts *TransferOptions) (*OperationResult, error)
	Delete(ctx context.Context, path string, opts *DeleteOptions) (*OperationResult, error)
	Mkdir(ctx context.Context, path string, fields []string) (*Link, error)

	Publish(ctx context.Context, path string) (*Link, error)
	Unpublish(ctx context.Context, path string) (*Link, error)
	ListPublicResources(ctx context.Context, opts *PublicListOptions) (*PublicResourcesList, error)
	GetPublicResource(ctx context.Context, publicKey string, opts *PublicMetaOptions) (*Resource, error)
	GetPublicDownloadLink(ctx context.Context, publicKey, path string) (*Link, error)
	DownloadPublicFile(ctx context.Context, publicKey, path string) ([]byte, error)

	// GetOperationStatus retrieves the status of an asynchronous operation
	GetOperationStatus(ctx context.Context, href string) (*Operation, error)

	// WaitForOperation blocks until the operation reports success
	WaitForOperation(ctx context.Context, href string) (*Operation, error)
}

var _ DiskClient = (*Client)(nil)
