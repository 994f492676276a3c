package interfaces

import (
	"context"

	"supportforge/internal/domain/entities"
)

//go:generate mockgen -source=client_repository_interface.go -destination=mocks/client_repository_mock.go -package=mocks

// IClientRepository abstracts DynamoDB persistence for Client.
//
// GetByID returns a zero-value Client (empty ID) when the id does not resolve.
type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}
