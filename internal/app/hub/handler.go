/*
Package hub contains the core logic for tracking connected clients and fanning
record updates out to them.

This file defines the Handler struct, which interprets inbound protocol frames
against the record store and decides, per operation, whether the result goes
back to the sender only or to every connected client.
*/
package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"usersync/internal/app/user"
	"usersync/internal/pkg/errs"
	"usersync/internal/pkg/logx"
)

// Handler executes protocol requests against the store and the hub.
// It is shared by all connections and carries no per-connection state.
type Handler struct {
	store  *user.Store
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler constructs a Handler bound to the given store and hub.
func NewHandler(store *user.Store, h *Hub) *Handler {
	handlerLogger := logx.Logger().With().Str("component", "handler").Logger()

	return &Handler{
		store:  store,
		hub:    h,
		logger: handlerLogger,
	}
}

// Handle decodes one inbound frame from the given client and executes it.
// Failures are reported as an error response to the originating client only;
// they never close the connection and never reach other clients.
func (h *Handler) Handle(clientID uint64, frameType int, data []byte) {
	if customErr := h.dispatch(clientID, frameType, data); customErr != nil {
		h.logger.Warn().
			Uint64("client_id", clientID).
			Int("code", customErr.Code).
			Str("reason", customErr.Message).
			Msg("Request failed.")

		h.sendError(clientID, customErr)
	}
}

// dispatch validates the frame, decodes the request envelope, and routes it
// to the matching operation.
func (h *Handler) dispatch(clientID uint64, frameType int, data []byte) *errs.CustomError {
	if frameType != websocket.TextMessage {
		return errs.NewError(errs.ErrInvalidRequestType)
	}

	var request Request
	if err := json.Unmarshal(data, &request); err != nil {
		return errs.NewError(errs.ErrInvalidRequestFormat)
	}

	switch request.Type {
	case RequestGet:
		return h.handleGet(clientID)

	case RequestAdd:
		if request.Data == nil {
			return errs.NewError(errs.ErrInvalidRequestFormat)
		}
		return h.handleAdd(*request.Data)

	case RequestEdit:
		if request.Data == nil {
			return errs.NewError(errs.ErrInvalidRequestFormat)
		}
		return h.handleEdit(request.ID, *request.Data)

	case RequestDelete:
		return h.handleDelete(request.ID)

	default:
		return errs.NewError(errs.ErrInvalidRequestFormat)
	}
}

// handleGet unicasts the full current record list to the requester.
func (h *Handler) handleGet(clientID uint64) *errs.CustomError {
	frame, err := encodeReload(h.store.List())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal reload response.")
		return errs.NewError(errs.ErrUnknown)
	}

	h.hub.unicast(clientID, frame)
	return nil
}

// handleAdd commits the new record, then broadcasts an append notification to
// all clients. Committing first means a concurrent get can never miss a record
// that has already been announced.
func (h *Handler) handleAdd(u user.User) *errs.CustomError {
	if customErr := h.store.Insert(u); customErr != nil {
		return customErr
	}

	frame, err := encodeAppend(u)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal append response.")
		return errs.NewError(errs.ErrUnknown)
	}

	h.hub.broadcast(frame)
	return nil
}

// handleEdit replaces the record in place, preserving its stored ID, then
// broadcasts the full refreshed list. Structural changes always reconcile
// every client to ground truth via a reload rather than an incremental diff.
func (h *Handler) handleEdit(id string, u user.User) *errs.CustomError {
	if customErr := h.store.Replace(id, u); customErr != nil {
		return customErr
	}

	return h.broadcastReload()
}

// handleDelete removes the record, then broadcasts the full refreshed list.
func (h *Handler) handleDelete(id string) *errs.CustomError {
	if customErr := h.store.Delete(id); customErr != nil {
		return customErr
	}

	return h.broadcastReload()
}

// broadcastReload sends a snapshot of the store to every connected client.
func (h *Handler) broadcastReload() *errs.CustomError {
	frame, err := encodeReload(h.store.List())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal reload response.")
		return errs.NewError(errs.ErrUnknown)
	}

	h.hub.broadcast(frame)
	return nil
}

// sendError unicasts an error response to the offending client.
func (h *Handler) sendError(clientID uint64, customErr *errs.CustomError) {
	frame, err := encodeError(customErr.Message)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal error response.")
		return
	}

	h.hub.unicast(clientID, frame)
}
