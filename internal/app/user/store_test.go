package user

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersync/internal/pkg/errs"
)

func sampleUser(id, username string) User {
	return User{
		ID:           id,
		Username:     username,
		Password:     "secret",
		ProfileImage: "avatars/" + id + ".png",
		JoinedDate:   "2024-01-01",
	}
}

func TestStoreListSnapshotIsIndependent(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.Insert(sampleUser("1", "alice")))

	snapshot := s.List()
	require.Len(t, snapshot, 1)

	snapshot[0].Username = "mallory"

	assert.Equal(t, "alice", s.List()[0].Username)
}

func TestStoreInsertPreservesOrder(t *testing.T) {
	s := NewStore()

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("%d", i)
		require.Nil(t, s.Insert(sampleUser(id, "user-"+id)))
	}

	users := s.List()
	require.Len(t, users, 5)
	for i, u := range users {
		assert.Equal(t, fmt.Sprintf("%d", i+1), u.ID)
	}
}

func TestStoreInsertDuplicateID(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.Insert(sampleUser("1", "alice")))

	customErr := s.Insert(sampleUser("1", "bob"))
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUserIDExists, customErr.Code)
	assert.Equal(t, "User with ID '1' already exists", customErr.Message)

	users := s.List()
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestStoreReplacePreservesStoredID(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.Insert(sampleUser("1", "alice")))
	require.Nil(t, s.Insert(sampleUser("2", "bob")))

	replacement := sampleUser("x", "carol")
	require.Nil(t, s.Replace("1", replacement))

	users := s.List()
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].ID, "stored ID must survive the payload's ID")
	assert.Equal(t, "carol", users[0].Username)
	assert.Equal(t, "2", users[1].ID, "record position must be preserved")
}

func TestStoreReplaceNotFound(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.Insert(sampleUser("1", "alice")))
	before := s.List()

	customErr := s.Replace("missing", sampleUser("missing", "nobody"))
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUserNotFound, customErr.Code)
	assert.Equal(t, "Cannot find user with ID 'missing'", customErr.Message)

	assert.Equal(t, before, s.List(), "a failed replace must leave the store untouched")
}

func TestStoreDeleteRemovesSlot(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.Insert(sampleUser("1", "alice")))
	require.Nil(t, s.Insert(sampleUser("2", "bob")))
	require.Nil(t, s.Insert(sampleUser("3", "carol")))

	require.Nil(t, s.Delete("2"))

	users := s.List()
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "3", users[1].ID)
}

func TestStoreDeleteNotFound(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.Insert(sampleUser("1", "alice")))
	before := s.List()

	customErr := s.Delete("missing")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUserNotFound, customErr.Code)

	assert.Equal(t, before, s.List(), "a failed delete must leave the store untouched")
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("%d-%d", w, i)
				assert.Nil(t, s.Insert(sampleUser(id, "user")))
				s.List()
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, s.List(), writers*perWriter)
}
