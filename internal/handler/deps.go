package handler

import (
	"usersync/internal/app/hub"
	"usersync/internal/app/storage"
	"usersync/internal/app/user"
	"usersync/internal/configs"
)

// AppDeps bundles the shared dependencies handed to every HTTP handler.
// Storage is nil when S3 avatar storage is not configured; the avatar
// endpoints are not mounted in that case.
type AppDeps struct {
	Hub     *hub.Hub
	Handler *hub.Handler
	Store   *user.Store
	Config  *configs.AppConfig
	Storage storage.Service
}
