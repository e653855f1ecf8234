package service

import (
	"shoom_backend/internal/repository"
	"shoom_backend/pkg/config"
)

type Services struct {
	User     *UserService
	Registry *RoomRegistry
	Gateway  *Gateway
	Token    *TokenService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	registry := NewRoomRegistry(RoomConfig{})

	return &Services{
		User:     NewUserService(repos.User),
		Registry: registry,
		Gateway:  NewGateway(registry),
		Token:    NewTokenService(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.URL),
	}
}
