package admin

import (
	"context"
	"io"
	"testing"

	"github.com/homestylefoods/storefront-backend/internal/catalog"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

// gifBytes is a minimal payload the sniffer identifies as image/gif.
var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")

type stubAdmins struct {
	admin string
}

func (s stubAdmins) IsAdmin(email string) bool {
	return email == s.admin
}

type stubFiles struct {
	saved []string
	err   error
}

func (s *stubFiles) Save(_ context.Context, filename string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, filename)
	return "static/images/" + filename, nil
}

func testService(t *testing.T, store *catalog.Store, files *stubFiles) Service {
	t.Helper()

	svc, err := NewService(
		stubAdmins{admin: "admin@example.com"},
		store,
		files,
		config.UploadsConfig{
			AllowedExtensions: []string{"png", "jpg", "jpeg", "gif"},
			MaxUploadMB:       8,
		},
		logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validInput() AddProductInput {
	return AddProductInput{
		Name:          "Avakaya Pickle",
		Price:         160,
		Description:   "Classic Andhra avakaya with cold-pressed oil.",
		Category:      "veg_pickles",
		ImageFilename: "avakaya.gif",
		ImageData:     gifBytes,
	}
}

func TestAddProductAppendsToCatalog(t *testing.T) {
	t.Parallel()

	store := catalog.NewSeededStore()
	files := &stubFiles{}
	svc := testService(t, store, files)

	product, err := svc.AddProduct(context.Background(), "admin@example.com", validInput())
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}

	if product.ID != 18 {
		t.Fatalf("expected id 18, got %d", product.ID)
	}
	if len(files.saved) != 1 || files.saved[0] != "avakaya.gif" {
		t.Fatalf("image not stored, saved=%v", files.saved)
	}

	shelf := store.List(catalog.CategoryVegPickles)
	if shelf[len(shelf)-1].Name != "Avakaya Pickle" {
		t.Fatal("product missing from its shelf")
	}
}

func TestAddProductRejectsNonAdmin(t *testing.T) {
	t.Parallel()

	store := catalog.NewSeededStore()
	files := &stubFiles{}
	svc := testService(t, store, files)

	_, err := svc.AddProduct(context.Background(), "priya@example.com", validInput())
	if apperrors.CodeOf(err) != apperrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if len(files.saved) != 0 {
		t.Fatal("rejected request must not store the image")
	}
}

func TestAddProductRejectsBadExtension(t *testing.T) {
	t.Parallel()

	store := catalog.NewSeededStore()
	files := &stubFiles{}
	svc := testService(t, store, files)

	input := validInput()
	input.ImageFilename = "malware.exe"

	_, err := svc.AddProduct(context.Background(), "admin@example.com", input)
	if apperrors.CodeOf(err) != apperrors.CodeUnsupportedFile {
		t.Fatalf("expected UNSUPPORTED_FILE_TYPE, got %v", err)
	}
	if len(files.saved) != 0 {
		t.Fatal("rejected upload must not be stored")
	}
	if shelf := store.List(catalog.CategoryVegPickles); len(shelf) != 5 {
		t.Fatal("rejected upload must not touch the catalog")
	}
}

func TestAddProductSniffsContent(t *testing.T) {
	t.Parallel()

	svc := testService(t, catalog.NewSeededStore(), &stubFiles{})

	input := validInput()
	input.ImageFilename = "fake.png"
	input.ImageData = []byte("#!/bin/sh\necho not an image\n")

	_, err := svc.AddProduct(context.Background(), "admin@example.com", input)
	if apperrors.CodeOf(err) != apperrors.CodeUnsupportedFile {
		t.Fatalf("expected UNSUPPORTED_FILE_TYPE for sniffed non-image, got %v", err)
	}
}

func TestAddProductRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	svc := testService(t, catalog.NewSeededStore(), &stubFiles{})

	input := validInput()
	input.Category = "desserts"

	_, err := svc.AddProduct(context.Background(), "admin@example.com", input)
	if apperrors.CodeOf(err) != apperrors.CodeInvalidCategory {
		t.Fatalf("expected INVALID_CATEGORY, got %v", err)
	}
}

func TestAddProductRequiresImage(t *testing.T) {
	t.Parallel()

	svc := testService(t, catalog.NewSeededStore(), &stubFiles{})

	input := validInput()
	input.ImageData = nil

	_, err := svc.AddProduct(context.Background(), "admin@example.com", input)
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
