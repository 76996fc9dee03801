package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeEmptyCart          Code = "EMPTY_CART"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInvalidCategory    Code = "INVALID_CATEGORY"
	CodeUnsupportedFile    Code = "UNSUPPORTED_FILE_TYPE"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeDependency         Code = "DEPENDENCY_ERROR"
)

// Flash levels understood by the view layer.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Metadata drives how the request boundary recovers from each code: which
// flash level the notice gets, where the visitor is sent next, and the
// fallback message when the error carries none. Redirect "" means "back to
// the referring page".
type Metadata struct {
	HTTPStatus    int
	FlashLevel    string
	Redirect      string
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:    http.StatusBadRequest,
		FlashLevel:    FlashDanger,
		Redirect:      "",
		PublicMessage: "please check the submitted fields",
	},
	CodeUnauthorized: {
		HTTPStatus:    http.StatusUnauthorized,
		FlashLevel:    FlashWarning,
		Redirect:      "/login",
		PublicMessage: "Please login to continue",
	},
	CodeForbidden: {
		HTTPStatus:    http.StatusForbidden,
		FlashLevel:    FlashDanger,
		Redirect:      "/home",
		PublicMessage: "Admin access required",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		FlashLevel:    FlashDanger,
		Redirect:      "/home",
		PublicMessage: "Product not found",
	},
	CodeEmptyCart: {
		HTTPStatus:    http.StatusConflict,
		FlashLevel:    FlashWarning,
		Redirect:      "/home",
		PublicMessage: "Your cart is empty",
	},
	CodeAlreadyExists: {
		HTTPStatus:    http.StatusConflict,
		FlashLevel:    FlashDanger,
		Redirect:      "/signup",
		PublicMessage: "Email already registered",
	},
	CodeInvalidCredentials: {
		HTTPStatus:    http.StatusUnauthorized,
		FlashLevel:    FlashDanger,
		Redirect:      "/login",
		PublicMessage: "Invalid email or password",
	},
	CodeInvalidCategory: {
		HTTPStatus:    http.StatusBadRequest,
		FlashLevel:    FlashDanger,
		Redirect:      "/admin/add_product",
		PublicMessage: "Unknown product category",
	},
	CodeUnsupportedFile: {
		HTTPStatus:    http.StatusBadRequest,
		FlashLevel:    FlashDanger,
		Redirect:      "/admin/add_product",
		PublicMessage: "Unsupported image file type",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		FlashLevel:    FlashDanger,
		Redirect:      "/home",
		PublicMessage: "Something went wrong, please try again",
	},
	CodeDependency: {
		HTTPStatus:    http.StatusServiceUnavailable,
		FlashLevel:    FlashDanger,
		Redirect:      "/home",
		PublicMessage: "Service temporarily unavailable",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the code from any error, mapping untyped errors to
// CodeInternal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// Codes whose error message is written for the visitor, so it may replace
// the canonical flash text. Everything else always shows the canonical text
// and internal detail never leaks into a flash.
var publicMessageCodes = map[Code]bool{
	CodeValidation:   true,
	CodeUnauthorized: true,
	CodeEmptyCart:    true,
}

// PublicMessage resolves the notice shown to the visitor.
func PublicMessage(err error) string {
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeInternal).PublicMessage
	}
	if publicMessageCodes[typed.Code()] {
		if m := typed.Message(); m != "" {
			return m
		}
	}
	return MetadataFor(typed.Code()).PublicMessage
}
