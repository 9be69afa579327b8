package yadisk

import (
	"net/url"
	"strings"
	"time"
)

// Resource types reported in Resource.Type.
const (
	ResourceTypeDir  = "dir"
	ResourceTypeFile = "file"
)

// Operation statuses reported by the operations endpoint.
const (
	OperationSuccess    = "success"
	OperationInProgress = "in-progress"
	OperationFailed     = "failed"
)

// DiskInfo is the response of the capacity endpoint.
type DiskInfo struct {
	TotalSpace    int64             `json:"total_space"`
	UsedSpace     int64             `json:"used_space"`
	TrashSize     int64             `json:"trash_size"`
	MaxFileSize   int64             `json:"max_file_size,omitempty"`
	IsPaid        bool              `json:"is_paid"`
	Revision      int64             `json:"revision,omitempty"`
	SystemFolders map[string]string `json:"system_folders,omitempty"`
	User          *User             `json:"user,omitempty"`
}

// FreeSpace is the part of TotalSpace not taken by files.
func (d *DiskInfo) FreeSpace() int64 {
	return d.TotalSpace - d.UsedSpace
}

type User struct {
	Country     string `json:"country,omitempty"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name,omitempty"`
	UID         string `json:"uid"`
}

// Resource describes a file or folder. Embedded is set for folders only.
type Resource struct {
	PublicKey        string         `json:"public_key,omitempty"`
	PublicURL        string         `json:"public_url,omitempty"`
	Embedded         *ResourceList  `json:"_embedded,omitempty"`
	Name             string         `json:"name"`
	Created          time.Time      `json:"created"`
	Modified         time.Time      `json:"modified"`
	CustomProperties map[string]any `json:"custom_properties,omitempty"`
	OriginPath       string         `json:"origin_path,omitempty"`
	Path             string         `json:"path"`
	MD5              string         `json:"md5,omitempty"`
	SHA256           string         `json:"sha256,omitempty"`
	Type             string         `json:"type"`
	MimeType         string         `json:"mime_type,omitempty"`
	MediaType        string         `json:"media_type,omitempty"`
	Preview          string         `json:"preview,omitempty"`
	Size             int64          `json:"size,omitempty"`
	ResourceID       string         `json:"resource_id,omitempty"`
	Revision         int64          `json:"revision,omitempty"`
}

func (r *Resource) IsDir() bool {
	return r.Type == ResourceTypeDir
}

type ResourceList struct {
	Sort      string     `json:"sort,omitempty"`
	PublicKey string     `json:"public_key,omitempty"`
	Items     []Resource `json:"items"`
	Path      string     `json:"path"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	Total     int        `json:"total"`
}

type FilesResourceList struct {
	Items  []Resource `json:"items"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type LastUploadedResourceList struct {
	Items []Resource `json:"items"`
	Limit int        `json:"limit"`
}

type PublicResourcesList struct {
	Items  []Resource `json:"items"`
	Type   string     `json:"type,omitempty"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Link is returned by calls that point the caller at another URL: the new
// resource, an upload or download target, or an operation status.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method"`
	Templated bool   `json:"templated,omitempty"`
}

// IsOperation reports whether the link points at an asynchronous operation.
func (l *Link) IsOperation() bool {
	if l == nil || l.Href == "" {
		return false
	}
	path := l.Href
	if u, err := url.Parse(l.Href); err == nil {
		path = u.Path
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "operations" || segment == "operation" {
			return true
		}
	}
	return false
}

type Operation struct {
	Status string `json:"status"`
}

// OperationResult is the outcome of a call that may finish asynchronously.
// Operation is nil when the API completed the call immediately.
type OperationResult struct {
	Link      *Link
	Operation *Operation
}

func (r *OperationResult) Async() bool {
	return r.Operation != nil
}

// ErrorResponse is the body the API sends with error statuses.
type ErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

// MetaOptions are the optional parameters of GetMetaInformation.
type MetaOptions struct {
	Fields      []string
	Limit       int
	Offset      int
	PreviewCrop bool
	PreviewSize string
	Sort        string
}

// FilesOptions are the optional parameters of ListFiles.
type FilesOptions struct {
	Limit       int
	MediaType   []string
	Offset      int
	Fields      []string
	PreviewSize string
	PreviewCrop bool
}

// LastUploadedOptions are the optional parameters of LastUploaded.
type LastUploadedOptions struct {
	Limit       int
	MediaType   []string
	Fields      []string
	PreviewSize string
	PreviewCrop bool
}

// TransferOptions are the optional parameters of Copy and Move.
type TransferOptions struct {
	Overwrite bool
	Fields    []string
}

// DeleteOptions are the optional parameters of Delete.
type DeleteOptions struct {
	Permanently bool
	Fields      []string
}

// PublicListOptions are the optional parameters of ListPublicResources.
type PublicListOptions struct {
	Limit       int
	Offset      int
	Type        string
	Fields      []string
	PreviewSize string
}

// PublicMetaOptions are the optional parameters of GetPublicResource.
type PublicMetaOptions struct {
	Path        string
	Sort        string
	Limit       int
	Offset      int
	PreviewSize string
	PreviewCrop bool
}
