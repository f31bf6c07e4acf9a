package cart

import (
	"context"

	"gadme-be/internal/metrics"
	"gadme-be/internal/product"
	"gadme-be/internal/user"

	"github.com/google/uuid"
)

// Service defines the business logic for carts. Every mutator returns the
// refreshed totals so callers can update a summary without a second call.
type Service interface {
	Read(ctx context.Context, userID uuid.UUID) ([]Line, Totals, error)
	Meta(ctx context.Context, userID uuid.UUID) (Totals, error)
	AddItem(ctx context.Context, params AddItemParams) (AddResult, error)
	SetQty(ctx context.Context, userID, lineID uuid.UUID, qty int) (Totals, error)
	IncrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) (Totals, error)
	DecrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) (Totals, error)
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (Totals, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (Totals, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	userRepo    user.Repository
	mutations   *metrics.Counter
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository, userRepo user.Repository) Service {
	return &service{
		repo:        repo,
		productRepo: productRepo,
		userRepo:    userRepo,
		mutations:   metrics.Default.Counter(metrics.CartMutations),
	}
}

func (s *service) ensureUser(ctx context.Context, userID uuid.UUID) error {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrUserNotFound
	}
	return nil
}

// Read returns the merged lines and the totals over Selected lines.
func (s *service) Read(ctx context.Context, userID uuid.UUID) ([]Line, Totals, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, Totals{}, err
	}

	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, Totals{}, err
	}
	return lines, Summarize(lines), nil
}

func (s *service) Meta(ctx context.Context, userID uuid.UUID) (Totals, error) {
	_, totals, err := s.Read(ctx, userID)
	return totals, err
}

func (s *service) totals(ctx context.Context, userID uuid.UUID) (Totals, error) {
	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(lines), nil
}

// AddItem adds qty of a product in a color to the cart, clamped to finite
// stock, merging into the existing line for the same product and color.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (AddResult, error) {
	if params.Qty < 1 {
		return AddResult{}, ErrInvalidQuantity
	}
	if params.Status == "" {
		params.Status = StatusSelected
	}
	if _, err := ParseLineStatus(string(params.Status)); err != nil {
		return AddResult{}, err
	}

	// 1. User and product must exist; only active products can be added
	if err := s.ensureUser(ctx, params.UserID); err != nil {
		return AddResult{}, err
	}
	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return AddResult{}, err
	}
	if !p.IsActive {
		return AddResult{}, product.ErrProductNotFound
	}
	if !p.AllowsColor(params.Color) {
		return AddResult{}, ErrInvalidColor
	}

	// 2. Clamp to stock
	qty := params.Qty
	if stock, finite := p.Available(); finite {
		qty = min(qty, stock)
		if qty < 1 {
			return AddResult{}, stockExceeded(stock)
		}
	}

	// 3. Insert or merge
	merged, err := s.repo.UpsertLine(ctx, UpsertLineParams{
		ID:        uuid.New(),
		UserID:    params.UserID,
		ProductID: p.ID,
		Color:     params.Color,
		Qty:       qty,
		Status:    params.Status,
		Price:     p.Price,
		Name:      p.Name,
		Image:     p.Image,
	})
	if err != nil {
		return AddResult{}, err
	}
	s.mutations.Inc()

	totals, err := s.totals(ctx, params.UserID)
	if err != nil {
		return AddResult{}, err
	}
	return AddResult{Totals: totals, Merged: merged, Added: qty}, nil
}

// SetQty replaces a line's quantity and reselects it.
func (s *service) SetQty(ctx context.Context, userID, lineID uuid.UUID, qty int) (Totals, error) {
	if qty < 1 {
		return Totals{}, ErrInvalidQuantity
	}

	line, err := s.repo.GetLine(ctx, userID, lineID)
	if err != nil {
		return Totals{}, err
	}
	if line.Stock != nil && qty > *line.Stock {
		return Totals{}, stockExceeded(*line.Stock)
	}

	if err := s.repo.SetQty(ctx, userID, lineID, qty); err != nil {
		return Totals{}, err
	}
	s.mutations.Inc()

	return s.totals(ctx, userID)
}

func (s *service) IncrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) (Totals, error) {
	if step < 1 {
		return Totals{}, ErrInvalidStep
	}

	line, err := s.repo.GetLine(ctx, userID, lineID)
	if err != nil {
		return Totals{}, err
	}
	if line.Stock != nil && line.Qty+step > *line.Stock {
		return Totals{}, stockExceeded(*line.Stock)
	}

	if err := s.repo.IncrementQty(ctx, userID, lineID, step); err != nil {
		return Totals{}, err
	}
	s.mutations.Inc()

	return s.totals(ctx, userID)
}

// DecrementQty lowers a line's quantity, holding at 1.
func (s *service) DecrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) (Totals, error) {
	if step < 1 {
		return Totals{}, ErrInvalidStep
	}

	if err := s.repo.DecrementQty(ctx, userID, lineID, step); err != nil {
		return Totals{}, err
	}
	s.mutations.Inc()

	return s.totals(ctx, userID)
}

// RemoveLine is idempotent: removing an absent line still succeeds.
func (s *service) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (Totals, error) {
	if err := s.repo.RemoveLine(ctx, userID, lineID); err != nil {
		return Totals{}, err
	}
	s.mutations.Inc()

	return s.totals(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) (Totals, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return Totals{}, err
	}
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return Totals{}, err
	}
	s.mutations.Inc()

	return Totals{}, nil
}
