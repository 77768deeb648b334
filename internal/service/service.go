package service

import (
	"context"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/operator/actions"
	"github.com/carson-networks/neofin-server/internal/storage"
)

// ActionProcessor runs an action inside its own database transaction.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Split       *SplitService
	Auth        *AuthService
}

func NewService(store *storage.Storage, operator ActionProcessor, jwtManager *auth.JWTManager) *Service {
	return &Service{
		Transaction: NewTransactionService(store, operator),
		Split:       NewSplitService(store, operator),
		Auth:        NewAuthService(store, operator, jwtManager),
	}
}
