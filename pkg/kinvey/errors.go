package kinvey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of error variants the client produces. Call
// sites classify errors with the Is* helpers below instead of matching
// strings.
type ErrorKind string

const (
	// Transport.
	ErrorKindInvalidConfigURL  ErrorKind = "InvalidConfigUrl"
	ErrorKindRequestTimedOut   ErrorKind = "RequestTimedOut"
	ErrorKindConnectionReset   ErrorKind = "ConnectionReset"
	ErrorKindConnectionRefused ErrorKind = "ConnectionRefused"

	// Authentication.
	ErrorKindInvalidCredentials   ErrorKind = "InvalidCredentials"
	ErrorKindInvalidTwoFactorAuth ErrorKind = "InvalidTwoFactorAuth"

	// Entity resolution.
	ErrorKindNoEntityFound        ErrorKind = "NoEntityFound"
	ErrorKindTooManyEntitiesFound ErrorKind = "TooManyEntitiesFound"
	ErrorKindItemNotSpecified     ErrorKind = "ItemNotSpecified"

	// Server-side.
	ErrorKindValidationError ErrorKind = "ValidationError"
	ErrorKindUnknownError    ErrorKind = "UnknownError"
)

// Error is the domain error type. Status carries the HTTP status code when
// the error originated from a non-2xx response, zero otherwise.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// FieldError is one entry of a server-side validation-errors array.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorBody is the error response shape the management API returns.
type ErrorBody struct {
	Code        string       `json:"code"`
	Description string       `json:"description,omitempty"`
	Debug       string       `json:"debug,omitempty"`
	Errors      []FieldError `json:"errors,omitempty"`
}

// knownKinds maps server error codes onto taxonomy variants. Codes outside
// this set surface as UnknownError with the code embedded in the message.
var knownKinds = map[string]ErrorKind{
	string(ErrorKindInvalidCredentials):   ErrorKindInvalidCredentials,
	string(ErrorKindInvalidTwoFactorAuth): ErrorKindInvalidTwoFactorAuth,
	string(ErrorKindValidationError):      ErrorKindValidationError,
}

// ErrorFromBody converts a parsed error body and status code into an Error.
func ErrorFromBody(body *ErrorBody, status int) *Error {
	msg := body.Description
	if msg == "" {
		msg = body.Debug
	}

	var builder strings.Builder

	builder.WriteString(msg)

	for _, fieldErr := range body.Errors {
		builder.WriteString("\n\t")

		if fieldErr.Field != "" {
			builder.WriteString(fmt.Sprintf("Field: %s. ", fieldErr.Field))
		}

		builder.WriteString(fieldErr.Message)
	}

	kind, ok := knownKinds[body.Code]
	if !ok {
		kind = ErrorKindUnknownError

		return &Error{Kind: kind, Message: fmt.Sprintf("%s %s", body.Code, builder.String()), Status: status}
	}

	return &Error{Kind: kind, Message: builder.String(), Status: status}
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	kinveyErr := &Error{}
	if errors.As(err, &kinveyErr) {
		return kinveyErr.Kind == kind
	}

	return false
}

// IsNotFound checks if the error is a NoEntityFound error.
func IsNotFound(err error) bool {
	return IsKind(err, ErrorKindNoEntityFound)
}

// IsTooManyFound checks if the error is a TooManyEntitiesFound error.
func IsTooManyFound(err error) bool {
	return IsKind(err, ErrorKindTooManyEntitiesFound)
}

// IsEntityError reports whether err is one of the generic resolution
// failures that services rewrap with family-specific context.
func IsEntityError(err error) bool {
	return IsNotFound(err) || IsTooManyFound(err)
}

// IsInvalidCredentials checks if the error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return IsKind(err, ErrorKindInvalidCredentials)
}

// IsMFATokenError checks if the error is an InvalidTwoFactorAuth error.
func IsMFATokenError(err error) bool {
	return IsKind(err, ErrorKindInvalidTwoFactorAuth)
}

// NewNotFoundError builds the NoEntityFound error for an entity family and
// the identifier that failed to resolve.
func NewNotFoundError(itemType ItemType, identifier string) *Error {
	lastPart := "."
	if identifier != "" {
		lastPart = fmt.Sprintf(" with identifier '%s'.", identifier)
	}

	return NewError(ErrorKindNoEntityFound, fmt.Sprintf("Could not find %s%s", itemType, lastPart))
}

// NewTooManyFoundError builds the TooManyEntitiesFound error for an entity
// family and identifier.
func NewTooManyFoundError(itemType ItemType, identifier string) *Error {
	lastPart := "."
	if identifier != "" {
		lastPart = fmt.Sprintf(" with identifier '%s'.", identifier)
	}

	return NewError(ErrorKindTooManyEntitiesFound, fmt.Sprintf("Found too many %ss%s", itemType, lastPart))
}

// NewItemNotSpecifiedError is returned when a command omits an identifier
// and no active item of that type is set.
func NewItemNotSpecifiedError(itemType ItemType) *Error {
	msg := fmt.Sprintf("No %s identifier is specified and active %s is not set.", itemType, itemType)

	return NewError(ErrorKindItemNotSpecified, msg)
}

// TransformEntityError rewrites a generic resolution error with the entity
// type and identifier of the failed lookup. Other errors pass through
// unchanged.
func TransformEntityError(err error, itemType ItemType, identifier string) error {
	if !IsEntityError(err) {
		return err
	}

	if IsNotFound(err) {
		return NewNotFoundError(itemType, identifier)
	}

	return NewTooManyFoundError(itemType, identifier)
}
