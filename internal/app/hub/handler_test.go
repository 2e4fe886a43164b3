package hub

import (
	"encoding/json"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersync/internal/app/user"
)

// wireResponse mirrors the outbound frame shapes for assertions.
type wireResponse struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    []user.User `json:"data"`
}

// wireAppend is the append frame, whose data is a single record.
type wireAppend struct {
	Type string    `json:"type"`
	Data user.User `json:"data"`
}

func newTestHandler(t *testing.T) (*Handler, *Hub, *user.Store) {
	t.Helper()
	store := user.NewStore()
	h := NewHub()
	return NewHandler(store, h), h, store
}

func connect(t *testing.T, h *Hub) (uint64, *outbox) {
	t.Helper()
	out := newOutbox()
	return h.register(out), out
}

func textFrame(t *testing.T, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func nextFrame(t *testing.T, out *outbox) wireResponse {
	t.Helper()
	frame, ok, _ := out.Pop()
	require.True(t, ok, "expected a queued frame")

	var response wireResponse
	require.NoError(t, json.Unmarshal(frame, &response))
	return response
}

func nextAppend(t *testing.T, out *outbox) wireAppend {
	t.Helper()
	frame, ok, _ := out.Pop()
	require.True(t, ok, "expected a queued frame")

	var response wireAppend
	require.NoError(t, json.Unmarshal(frame, &response))
	return response
}

func assertNoFrame(t *testing.T, out *outbox) {
	t.Helper()
	_, ok, _ := out.Pop()
	assert.False(t, ok, "expected no queued frame")
}

func TestHandleGetUnicastsSnapshot(t *testing.T) {
	handler, h, store := newTestHandler(t)
	idA, outA := connect(t, h)
	_, outB := connect(t, h)

	require.Nil(t, store.Insert(user.User{ID: "1", Username: "alice"}))

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{"type": "get"}))

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseReload, response.Type)
	require.Len(t, response.Data, 1)
	assert.Equal(t, "1", response.Data[0].ID)

	assertNoFrame(t, outB)
}

func TestHandleGetOnEmptyStore(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, outA := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{"type": "get"}))

	frame, ok, _ := outA.Pop()
	require.True(t, ok)
	// an empty store serializes as [] so frontends can iterate unconditionally
	assert.JSONEq(t, `{"type":"reload","data":[]}`, string(frame))
}

func TestHandleAddBroadcastsAppend(t *testing.T) {
	handler, h, store := newTestHandler(t)
	idA, outA := connect(t, h)
	_, outB := connect(t, h)

	record := user.User{ID: "1", Username: "alice", JoinedDate: "2024-01-01"}
	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{"type": "add", "data": record}))

	for _, out := range []*outbox{outA, outB} {
		response := nextAppend(t, out)
		assert.Equal(t, ResponseAppend, response.Type)
		assert.Equal(t, record, response.Data)
	}

	require.Len(t, store.List(), 1)
}

func TestHandleAddDuplicateErrorsSenderOnly(t *testing.T) {
	handler, h, store := newTestHandler(t)
	idA, outA := connect(t, h)
	idB, outB := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "add", "data": user.User{ID: "1", Username: "alice"},
	}))
	nextAppend(t, outA)
	nextAppend(t, outB)

	handler.Handle(idB, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "add", "data": user.User{ID: "1", Username: "bob"},
	}))

	response := nextFrame(t, outB)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "User with ID '1' already exists", response.Message)

	assertNoFrame(t, outA)

	users := store.List()
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestHandleAddWithoutDataIsRejected(t *testing.T) {
	handler, h, store := newTestHandler(t)
	idA, outA := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{"type": "add"}))

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "Invalid request format", response.Message)
	assert.Empty(t, store.List())
}

func TestHandleEditPreservesIDAndBroadcastsReload(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, outA := connect(t, h)
	_, outB := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "add", "data": user.User{ID: "1", Username: "alice"},
	}))
	nextAppend(t, outA)
	nextAppend(t, outB)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "edit", "id": "1", "data": user.User{ID: "x", Username: "new"},
	}))

	for _, out := range []*outbox{outA, outB} {
		response := nextFrame(t, out)
		assert.Equal(t, ResponseReload, response.Type)
		require.Len(t, response.Data, 1)
		assert.Equal(t, "1", response.Data[0].ID, "stored ID must survive the edit payload")
		assert.Equal(t, "new", response.Data[0].Username)
	}
}

func TestHandleEditUnknownIDErrorsSenderOnly(t *testing.T) {
	handler, h, store := newTestHandler(t)
	idA, outA := connect(t, h)
	_, outB := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "edit", "id": "missing", "data": user.User{ID: "missing"},
	}))

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "Cannot find user with ID 'missing'", response.Message)

	assertNoFrame(t, outB)
	assert.Empty(t, store.List())
}

func TestHandleDeleteBroadcastsReload(t *testing.T) {
	handler, h, store := newTestHandler(t)
	idA, outA := connect(t, h)
	_, outB := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "add", "data": user.User{ID: "1", Username: "alice"},
	}))
	nextAppend(t, outA)
	nextAppend(t, outB)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "delete", "id": "1",
	}))

	for _, out := range []*outbox{outA, outB} {
		response := nextFrame(t, out)
		assert.Equal(t, ResponseReload, response.Type)
		assert.Empty(t, response.Data)
	}

	assert.Empty(t, store.List())
}

func TestHandleDeleteUnknownID(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, outA := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{
		"type": "delete", "id": "missing",
	}))

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "Cannot find user with ID 'missing'", response.Message)
}

func TestHandleRejectsBinaryFrames(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, outA := connect(t, h)

	handler.Handle(idA, websocket.BinaryMessage, []byte{0x01, 0x02})

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "Invalid request type", response.Message)
}

func TestHandleRejectsMalformedJSON(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, outA := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, []byte("{not json"))

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "Invalid request format", response.Message)
}

func TestHandleRejectsUnknownRequestType(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, outA := connect(t, h)

	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{"type": "upsert"}))

	response := nextFrame(t, outA)
	assert.Equal(t, ResponseError, response.Type)
	assert.Equal(t, "Invalid request format", response.Message)
}

func TestHandleAfterDisconnectDoesNotPanic(t *testing.T) {
	handler, h, _ := newTestHandler(t)
	idA, _ := connect(t, h)
	h.unregister(idA)

	// the error reply for a gone client is silently dropped
	handler.Handle(idA, websocket.TextMessage, []byte("{not json"))
	handler.Handle(idA, websocket.TextMessage, textFrame(t, map[string]any{"type": "get"}))
}
