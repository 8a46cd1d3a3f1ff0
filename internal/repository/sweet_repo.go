package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/dto"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
)

// SweetRepository defines the data access contract for the catalog.
type SweetRepository interface {
	Create(ctx context.Context, s *model.Sweet) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, filter dto.SweetFilter) ([]model.Sweet, error)
	Update(ctx context.Context, s *model.Sweet) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock decrements quantity by qty in a single conditional
	// UPDATE guarded by quantity >= qty, returning the post-decrement
	// quantity of this exact statement via RETURNING. ok=false means the
	// sweet is missing or stock was insufficient at the instant of the
	// update. This is the only decrement path; a plain read-then-write
	// would race under concurrent purchases.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (newQty int, ok bool, err error)

	// IncrementStock adds qty atomically and returns the new quantity.
	// ok=false means no such row.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (newQty int, ok bool, err error)
}

type sweetRepo struct{ db *gorm.DB }

func NewSweetRepository(db *gorm.DB) SweetRepository { return &sweetRepo{db: db} }

func (r *sweetRepo) Create(ctx context.Context, s *model.Sweet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sweetRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error) {
	var s model.Sweet
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sweetRepo) List(ctx context.Context) ([]model.Sweet, error) {
	var sweets []model.Sweet
	err := r.db.WithContext(ctx).Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) Search(ctx context.Context, filter dto.SweetFilter) ([]model.Sweet, error) {
	q := r.db.WithContext(ctx).Model(&model.Sweet{})

	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		// Comma-separated list: a sweet matches when its category contains
		// ANY of the listed values (OR), combined with the other filters (AND).
		var (
			clauses []string
			args    []interface{}
		)
		for _, cat := range strings.Split(filter.Category, ",") {
			cat = strings.TrimSpace(cat)
			if cat == "" {
				continue
			}
			clauses = append(clauses, "LOWER(category) LIKE ?")
			args = append(args, "%"+strings.ToLower(cat)+"%")
		}
		if len(clauses) > 0 {
			q = q.Where(strings.Join(clauses, " OR "), args...)
		}
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", filter.MaxPrice)
	}

	var sweets []model.Sweet
	err := q.Order("name ASC").Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) Update(ctx context.Context, s *model.Sweet) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sweet{}, "id = ?", id).Error
}

func (r *sweetRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int, bool, error) {
	var newQty int
	res := r.db.WithContext(ctx).Raw(
		`UPDATE sweets SET quantity = quantity - ?, updated_at = ?
		 WHERE id = ? AND quantity >= ? RETURNING quantity`,
		qty, time.Now(), id, qty).Scan(&newQty)
	return newQty, res.RowsAffected == 1, res.Error
}

func (r *sweetRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (int, bool, error) {
	var newQty int
	res := r.db.WithContext(ctx).Raw(
		`UPDATE sweets SET quantity = quantity + ?, updated_at = ?
		 WHERE id = ? RETURNING quantity`,
		qty, time.Now(), id).Scan(&newQty)
	return newQty, res.RowsAffected == 1, res.Error
}
