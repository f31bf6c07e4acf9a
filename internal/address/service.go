package address

import (
	"context"

	"gadme-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages a user's address book.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]Address, error)
	GetForUser(ctx context.Context, userID, addressID uuid.UUID) (*Address, error)
	Create(ctx context.Context, userID uuid.UUID, input Shipping) (*Address, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, input UpdateInput) (*Address, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) (*Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetForUser hides addresses owned by someone else behind NotFound.
func (s *service) GetForUser(ctx context.Context, userID, addressID uuid.UUID) (*Address, error) {
	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		logger.FromCtx(ctx).Warn("address owned by another user",
			zap.String("service", "Address"),
			zap.String("address_id", addressID.String()),
		)
		return nil, ErrAddressNotFound
	}
	return addr, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input Shipping) (*Address, error) {
	shipping := Normalize(input)
	if err := Validate(shipping); err != nil {
		return nil, err
	}

	addr := &Address{
		ID:       uuid.New(),
		UserID:   userID,
		Shipping: shipping,
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("address created",
		zap.String("service", "Address"),
		zap.String("address_id", addr.ID.String()),
	)
	return addr, nil
}

func (s *service) Update(ctx context.Context, userID, addressID uuid.UUID, input UpdateInput) (*Address, error) {
	addr, err := s.GetForUser(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	addr.Shipping = input.apply(addr.Shipping)
	if err := Validate(addr.Shipping); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *service) Delete(ctx context.Context, userID, addressID uuid.UUID) (*Address, error) {
	addr, err := s.GetForUser(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, userID, addressID); err != nil {
		return nil, err
	}
	return addr, nil
}
