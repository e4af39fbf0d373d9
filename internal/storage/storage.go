// Package storage uploads user images to a blob store.
package storage

import (
	"context"
	"io"

	"storefront-api/internal/model"
)

// Upload is an object to store.
type Upload struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StoredObject locates an uploaded object. PublicID is the handle used to
// delete it later.
type StoredObject struct {
	URL      string
	PublicID string
}

// ImageStore uploads and deletes images.
type ImageStore interface {
	Upload(ctx context.Context, u Upload) (*StoredObject, error)
	Delete(ctx context.Context, publicID string) error
}

// disabledStore rejects uploads when no blob store is configured.
type disabledStore struct{}

// NewDisabledStore returns an ImageStore that refuses every upload.
func NewDisabledStore() ImageStore {
	return disabledStore{}
}

func (disabledStore) Upload(context.Context, Upload) (*StoredObject, error) {
	return nil, model.NewDomainError(model.KindInternal, "image storage is not configured")
}

func (disabledStore) Delete(context.Context, string) error {
	return nil
}
