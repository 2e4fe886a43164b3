/*
Package user contains the shared user record and the in-memory store that is
synchronized across all connected clients.

This file defines the User struct, the domain record exchanged over the
WebSocket protocol and rendered by the frontend user list.
*/
package user

// User represents one record in the shared collection.
// The ID is assigned by the creating client and is the only field the server
// interprets; every other field is opaque payload passed through to clients.
type User struct {

	// ID is the unique identifier of the record within the store.
	ID string `json:"id"`

	// Username is the display name shown in the user list.
	Username string `json:"username"`

	// Password is an opaque credential string. The server never inspects it.
	Password string `json:"password"`

	// ProfileImage is the URL of the user's avatar image.
	ProfileImage string `json:"profile_image"`

	// JoinedDate is the client-supplied join timestamp, kept as a plain string.
	JoinedDate string `json:"joined_date"`
}
