/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize both HTTP responses and WebSocket error payloads.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// WebSocket protocol error texts match what clients of the original user-list
// frontend expect verbatim.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Synchronization Protocol Errors
	ErrInvalidRequestType:   {Code: ErrInvalidRequestType, Message: "Invalid request type"},
	ErrInvalidRequestFormat: {Code: ErrInvalidRequestFormat, Message: "Invalid request format"},
	ErrUserIDExists:         {Code: ErrUserIDExists, Message: "User with ID '%s' already exists"},
	ErrUserNotFound:         {Code: ErrUserNotFound, Message: "Cannot find user with ID '%s'"},

	// 3xxx: Avatar Upload Errors
	ErrFileSizeTooLarge: {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:  {Code: ErrFileTypeInvalid, Message: "Invalid file type."},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again."},
}
