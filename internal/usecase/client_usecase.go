package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"supportforge/internal/domain/entities"
	"supportforge/internal/usecase/interfaces"

	"github.com/google/uuid"
)

//go:generate mockgen -source=client_usecase.go -destination=../adapter/http/handlers/mocks/client_usecase_mock.go -package=mocks

// CreateClientInput is the command for registering a billing client.
type CreateClientInput struct {
	Name    string
	Email   string
	Company string
}

// IClientUseCase exposes the client management operations the back-office
// needs around the invoice core.
type IClientUseCase interface {
	Create(ctx context.Context, in CreateClientInput) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}

type ClientUseCase struct {
	repo interfaces.IClientRepository
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(repo interfaces.IClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

func (u *ClientUseCase) Create(ctx context.Context, in CreateClientInput) (entities.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	if in.Name == "" {
		return entities.Client{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return entities.Client{}, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}

	now := time.Now().UTC()
	c := entities.Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Create(ctx, c)
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, fmt.Errorf("%w: client id is required", ErrValidation)
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) List(ctx context.Context) ([]entities.Client, error) {
	return u.repo.List(ctx)
}
