/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Synchronization Protocol Errors
const (
	// ErrInvalidRequestType indicates that the client sent a non-text WebSocket frame.
	ErrInvalidRequestType = 2001

	// ErrInvalidRequestFormat indicates that the client sent a frame that is not a valid request.
	ErrInvalidRequestFormat = 2002

	// ErrUserIDExists indicates that a record with the submitted ID is already in the store.
	ErrUserIDExists = 2101

	// ErrUserNotFound indicates that no record with the submitted ID is in the store.
	ErrUserNotFound = 2102
)

// 3xxx: Avatar Upload Errors
const (
	// ErrFileSizeTooLarge indicates that the avatar exceeds the maximum allowed size.
	ErrFileSizeTooLarge = 3001

	// ErrFileTypeInvalid indicates that the avatar file type is not an accepted image format.
	ErrFileTypeInvalid = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates a failure while talking to the object storage backend.
	ErrFileStorageFailed = 5001
)
