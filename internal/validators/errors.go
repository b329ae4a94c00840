package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrEmptyBlob         = errors.New("blob is required")
	ErrInvalidBlob       = errors.New("blob is not a valid encrypted vault")
	ErrInvalidMeta       = errors.New("invalid vault meta")
	ErrEmptyAppVersion   = errors.New("app version is required")
	ErrInvalidDeviceID   = errors.New("invalid device id")
	ErrInvalidLabel      = errors.New("invalid device label")
	ErrInvalidCreatedAt  = errors.New("invalid version timestamp")
	ErrMalformedDocument = errors.New("document is not valid JSON")
	ErrSchemaViolation   = errors.New("document does not match schema")
)
