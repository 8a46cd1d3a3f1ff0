package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/apierror"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/dto"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/repository"
)

const sweetCacheTTL = 1 * time.Hour

// SweetService is the inventory ledger: catalog CRUD, filtered search, and the
// stock transactions (purchase/restock) with their never-negative guarantee.
type SweetService interface {
	Create(ctx context.Context, req dto.CreateSweetRequest) (*dto.SweetResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SweetResponse, error)
	List(ctx context.Context) ([]dto.SweetResponse, error)
	Search(ctx context.Context, filter dto.SweetFilter) ([]dto.SweetResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSweetRequest) (*dto.SweetResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Purchase(ctx context.Context, id uuid.UUID, qty int) (*dto.PurchaseResponse, error)
	Restock(ctx context.Context, id uuid.UUID, qty int) (*dto.RestockResponse, error)
}

type sweetService struct {
	repo repository.SweetRepository
	rdb  *redis.Client // nil in unit tests; cache becomes a no-op
}

func NewSweetService(repo repository.SweetRepository, rdb *redis.Client) SweetService {
	return &sweetService{repo: repo, rdb: rdb}
}

func (s *sweetService) Create(ctx context.Context, req dto.CreateSweetRequest) (*dto.SweetResponse, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", apierror.ErrInvalidInput)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", apierror.ErrInvalidInput)
	}
	sweet := &model.Sweet{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
		ImageURL: req.ImageURL,
	}
	if sweet.ImageURL == nil {
		sweet.ImageURL = defaultImageForCategory(sweet.Category)
	}
	if err := s.repo.Create(ctx, sweet); err != nil {
		return nil, err
	}
	return sweetToResponse(sweet), nil
}

func (s *sweetService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SweetResponse, error) {
	// Cheap path for the public detail endpoint, same pattern as the
	// catalog read cache in the POS price check.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey(id)).Bytes(); err == nil {
			var resp dto.SweetResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	resp := sweetToResponse(sweet)

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey(id), b, sweetCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *sweetService) List(ctx context.Context) ([]dto.SweetResponse, error) {
	sweets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sweetsToResponses(sweets), nil
}

func (s *sweetService) Search(ctx context.Context, filter dto.SweetFilter) ([]dto.SweetResponse, error) {
	sweets, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return sweetsToResponses(sweets), nil
}

// Update applies only the fields present in the request and re-derives a
// default image when the result still has none.
func (s *sweetService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSweetRequest) (*dto.SweetResponse, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.Name != nil {
		sweet.Name = *req.Name
	}
	if req.Category != nil {
		sweet.Category = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", apierror.ErrInvalidInput)
		}
		sweet.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", apierror.ErrInvalidInput)
		}
		sweet.Quantity = *req.Quantity
	}
	if req.ImageURL != nil {
		sweet.ImageURL = req.ImageURL
	}
	if sweet.ImageURL == nil {
		sweet.ImageURL = defaultImageForCategory(sweet.Category)
	}

	if err := s.repo.Update(ctx, sweet); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return sweetToResponse(sweet), nil
}

func (s *sweetService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Purchase decrements stock. The check-then-decrement is a single conditional
// UPDATE in the repository, so two concurrent purchases can never both drain
// the same units: the ok flag tells us whether we won.
func (s *sweetService) Purchase(ctx context.Context, id uuid.UUID, qty int) (*dto.PurchaseResponse, error) {
	if qty <= 0 {
		return nil, apierror.ErrInvalidQuantity
	}

	newQty, ok, err := s.repo.DecrementStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the update; classify by re-reading the row.
		sweet, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, notFoundOr(err)
		}
		if sweet.Quantity == 0 {
			return nil, apierror.ErrOutOfStock
		}
		return nil, apierror.ErrInsufficientStock
	}

	s.invalidate(ctx, id)
	// newQty comes from the RETURNING clause of the decrement itself, so it
	// reports this transaction's result even under interleaved purchases.
	return &dto.PurchaseResponse{PurchasedQty: qty, RemainingStock: newQty}, nil
}

// Restock increments stock atomically.
func (s *sweetService) Restock(ctx context.Context, id uuid.UUID, qty int) (*dto.RestockResponse, error) {
	if qty <= 0 {
		return nil, apierror.ErrInvalidQuantity
	}

	newQty, ok, err := s.repo.IncrementStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: sweet not found", apierror.ErrNotFound)
	}

	s.invalidate(ctx, id)
	return &dto.RestockResponse{NewStock: newQty}, nil
}

func (s *sweetService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, cacheKey(id)).Err()
	}
}

func cacheKey(id uuid.UUID) string { return "sweet:" + id.String() }

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: sweet not found", apierror.ErrNotFound)
	}
	return err
}

func sweetToResponse(sw *model.Sweet) *dto.SweetResponse {
	return &dto.SweetResponse{
		ID:       sw.ID.String(),
		Name:     sw.Name,
		Category: sw.Category,
		Price:    sw.Price,
		Quantity: sw.Quantity,
		ImageURL: sw.ImageURL,
	}
}

func sweetsToResponses(sweets []model.Sweet) []dto.SweetResponse {
	resp := make([]dto.SweetResponse, 0, len(sweets))
	for i := range sweets {
		resp = append(resp, *sweetToResponse(&sweets[i]))
	}
	return resp
}
