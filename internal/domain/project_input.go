package domain

import (
	"fmt"
	"io"
	"strings"
)

// MaxUploadSize mirrors the hosting platform's request body limit.
const MaxUploadSize int64 = 4_718_592 // 4.5 MiB

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (u *Upload) IsEmpty() bool {
	return u == nil || u.Size == 0
}

// ProjectInput is the seller's create or update form.
// Price stays a string until ParsePrice so that non-numeric input is rejected explicitly.
type ProjectInput struct {
	Name        string
	Description string
	Price       string

	Image *Upload
	File  *Upload
}

func (in ProjectInput) ValidateCreate(maxUploadSize int64) error {
	if err := in.validateFields(); err != nil {
		return err
	}

	if in.Image.IsEmpty() {
		return fmt.Errorf("%w: cover image is required", ErrInvalidInput)
	}

	if in.File.IsEmpty() {
		return fmt.Errorf("%w: project file is required", ErrInvalidInput)
	}

	return in.validateUploads(maxUploadSize)
}

// ValidateUpdate allows missing uploads: the stored ones are kept.
func (in ProjectInput) ValidateUpdate(maxUploadSize int64) error {
	if err := in.validateFields(); err != nil {
		return err
	}

	return in.validateUploads(maxUploadSize)
}

func (in ProjectInput) validateFields() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(in.Price) == "" {
		return fmt.Errorf("%w: price is required", ErrInvalidInput)
	}

	return nil
}

func (in ProjectInput) validateUploads(maxUploadSize int64) error {
	if !in.Image.IsEmpty() && in.Image.Size > maxUploadSize {
		return fmt.Errorf("%w: cover image exceeds %d bytes", ErrInvalidInput, maxUploadSize)
	}

	if !in.File.IsEmpty() && in.File.Size > maxUploadSize {
		return fmt.Errorf("%w: project file exceeds %d bytes", ErrInvalidInput, maxUploadSize)
	}

	return nil
}
