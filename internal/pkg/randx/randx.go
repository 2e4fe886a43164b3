/*
Package randx provides functions for generating unique identifiers.

It is used for object keys of uploaded avatar images.
*/
package randx

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AvatarKeyPrefix is the object key namespace for uploaded avatar images.
const AvatarKeyPrefix = "avatars/"

// AvatarKey generates a unique object storage key for an avatar upload.
// The key is a UUID v4 under the avatars/ prefix, keeping the original file
// extension so the storage backend can serve a sensible Content-Type.
func AvatarKey(fileExt string) string {
	return fmt.Sprintf("%s%s%s", AvatarKeyPrefix, uuid.New().String(), strings.ToLower(fileExt))
}

// IsAvatarKey reports whether the given object key belongs to the avatar namespace.
func IsAvatarKey(key string) bool {
	return strings.HasPrefix(key, AvatarKeyPrefix) && len(key) > len(AvatarKeyPrefix)
}
