package usecase

import (
	"context"
	"errors"
	"testing"

	"supportforge/internal/domain/entities"
	mock_interfaces "supportforge/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestClientUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("validations", func(t *testing.T) {
		cases := []struct {
			name string
			in   CreateClientInput
		}{
			{"empty name", CreateClientInput{Name: "  ", Email: "a@b.test"}},
			{"empty email", CreateClientInput{Name: "Acme"}},
			{"malformed email", CreateClientInput{Name: "Acme", Email: "not-an-email"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				repo := mock_interfaces.NewMockIClientRepository(ctrl)
				uc := NewClientUseCase(repo)

				_, err := uc.Create(ctx, tc.in)
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
			})
		}
	})

	t.Run("happy path trims and persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Client) (entities.Client, error) {
				return c, nil
			})

		c, err := uc.Create(ctx, CreateClientInput{Name: "  Acme Corp  ", Email: " billing@acme.test ", Company: "Acme Holdings"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ID == "" {
			t.Fatal("expected generated client id")
		}
		if c.Name != "Acme Corp" || c.Email != "billing@acme.test" {
			t.Fatalf("expected trimmed fields, got %q / %q", c.Name, c.Email)
		}
		if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
			t.Fatal("expected timestamps to be set")
		}
	})
}

func TestClientUseCase_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id", func(t *testing.T) {
		uc := NewClientUseCase(nil)
		_, err := uc.GetByID(ctx, "  ")
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Client{}, nil)

		_, err := uc.GetByID(ctx, "ghost")
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)

		c, err := uc.GetByID(ctx, "client-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ID != "client-1" {
			t.Fatalf("expected client-1, got %q", c.ID)
		}
	})
}
