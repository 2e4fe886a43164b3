/*
Package hub contains the core logic for tracking connected clients and fanning
record updates out to them.

This file defines the wire protocol: inbound request envelopes and the
reload/append/error response frames, all single JSON objects tagged by "type".
*/
package hub

import (
	"encoding/json"

	"usersync/internal/app/user"
)

// Inbound request types.
const (
	// RequestGet asks for the full current record list.
	RequestGet = "get"

	// RequestAdd creates a new record.
	RequestAdd = "add"

	// RequestEdit replaces an existing record.
	RequestEdit = "edit"

	// RequestDelete removes an existing record.
	RequestDelete = "delete"
)

// Outbound response types.
const (
	// ResponseReload carries a full collection snapshot.
	ResponseReload = "reload"

	// ResponseAppend carries a single newly created record.
	ResponseAppend = "append"

	// ResponseError carries a human-readable failure description.
	ResponseError = "error"
)

// Request is the inbound message envelope. ID is set for edit and delete;
// Data is set for add and edit.
type Request struct {
	Type string     `json:"type"`
	ID   string     `json:"id,omitempty"`
	Data *user.User `json:"data,omitempty"`
}

// reloadResponse is the full-snapshot outbound frame.
type reloadResponse struct {
	Type string      `json:"type"`
	Data []user.User `json:"data"`
}

// appendResponse announces a single newly created record.
type appendResponse struct {
	Type string    `json:"type"`
	Data user.User `json:"data"`
}

// errorResponse reports a request failure to the offending client only.
type errorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// encodeReload marshals a reload frame for the given snapshot.
// A nil snapshot is encoded as an empty array, never as null.
func encodeReload(users []user.User) ([]byte, error) {
	if users == nil {
		users = []user.User{}
	}
	return json.Marshal(reloadResponse{Type: ResponseReload, Data: users})
}

// encodeAppend marshals an append frame for a newly created record.
func encodeAppend(u user.User) ([]byte, error) {
	return json.Marshal(appendResponse{Type: ResponseAppend, Data: u})
}

// encodeError marshals an error frame with the given message.
func encodeError(message string) ([]byte, error) {
	return json.Marshal(errorResponse{Type: ResponseError, Message: message})
}
