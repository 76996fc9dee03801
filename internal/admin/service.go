package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/homestylefoods/storefront-backend/internal/catalog"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
	"github.com/homestylefoods/storefront-backend/pkg/storage"
)

// AddProductInput carries the admin form fields plus the uploaded image.
type AddProductInput struct {
	Name        string `form:"name" validate:"required"`
	Price       int64  `form:"price" validate:"required,gt=0"`
	Description string `form:"description" validate:"required"`
	Category    string `form:"category" validate:"required"`

	ImageFilename string
	ImageData     []byte
}

// AdminChecker reports whether an email belongs to the admin account.
type AdminChecker interface {
	IsAdmin(email string) bool
}

// Catalog is the ingestion surface the service writes to.
type Catalog interface {
	Append(product catalog.Product) (catalog.Product, error)
}

// Service handles admin product ingestion.
type Service interface {
	AddProduct(ctx context.Context, actorEmail string, input AddProductInput) (catalog.Product, error)
}

type service struct {
	admins  AdminChecker
	catalog Catalog
	files   storage.Store
	uploads config.UploadsConfig
	logg    *logger.Logger
}

// NewService validates dependencies and returns the admin service.
func NewService(admins AdminChecker, cat Catalog, files storage.Store, uploads config.UploadsConfig, logg *logger.Logger) (Service, error) {
	if admins == nil {
		return nil, errors.New("admin checker is required")
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if files == nil {
		return nil, errors.New("file store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		admins:  admins,
		catalog: cat,
		files:   files,
		uploads: uploads,
		logg:    logg,
	}, nil
}

// AddProduct checks the actor, validates the upload, stores the image and
// appends the product. The catalog is only touched after the image is safe
// on disk, so a rejected upload never leaves a half-added product.
func (s *service) AddProduct(ctx context.Context, actorEmail string, input AddProductInput) (catalog.Product, error) {
	if !s.admins.IsAdmin(actorEmail) {
		return catalog.Product{}, apperrors.New(apperrors.CodeForbidden, "admin access required").
			WithDetails(map[string]any{"actor": actorEmail})
	}

	category, err := catalog.ParseCategory(input.Category)
	if err != nil {
		return catalog.Product{}, err
	}

	if err := s.checkImage(input.ImageFilename, input.ImageData); err != nil {
		return catalog.Product{}, err
	}

	location, err := s.files.Save(ctx, input.ImageFilename, input.ImageData)
	if err != nil {
		return catalog.Product{}, apperrors.Wrap(apperrors.CodeInternal, err, "storing product image")
	}

	product, err := s.catalog.Append(catalog.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.ImageFilename,
		Category:    category,
	})
	if err != nil {
		return catalog.Product{}, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": product.ID,
		"category":   string(category),
		"image":      location,
	}), "product added")

	return product, nil
}

func (s *service) checkImage(filename string, data []byte) error {
	if filename == "" || len(data) == 0 {
		return apperrors.New(apperrors.CodeValidation, "No image uploaded")
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return apperrors.New(apperrors.CodeUnsupportedFile, "image has no extension").
			WithDetails(map[string]any{"filename": filename})
	}
	ext := strings.ToLower(filename[dot+1:])
	if !s.uploads.AllowsExtension(ext) {
		return apperrors.New(apperrors.CodeUnsupportedFile, "extension not allowed").
			WithDetails(map[string]any{"filename": filename, "extension": ext})
	}

	// Extensions lie; sniff the actual content.
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return apperrors.New(apperrors.CodeUnsupportedFile, "file content is not an image").
			WithDetails(map[string]any{"filename": filename, "detected": detected.String()})
	}

	max := int64(s.uploads.MaxUploadMB) << 20
	if max > 0 && int64(len(data)) > max {
		return apperrors.New(apperrors.CodeValidation, "Image is too large").
			WithDetails(map[string]any{"filename": filename, "size": len(data)})
	}

	return nil
}
