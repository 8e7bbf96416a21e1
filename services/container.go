package services

import (
	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/storage"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"
)

type Container struct {
	Auth   AuthService
	Upload UploadService
	Share  ShareService
	Admin  AdminService
}

func NewContainer(repos repositories.Container, store storage.Store, tokens *utils.TokenManager) *Container {
	return &Container{
		Auth:   NewAuthService(repos.TxManager, repos.Users, tokens),
		Upload: NewUploadService(repos.TxManager, repos.Users, repos.Uploads, repos.Analytics, store),
		Share:  NewShareService(repos.Uploads, store),
		Admin:  NewAdminService(repos.TxManager, repos.Users, repos.Uploads, store),
	}
}
