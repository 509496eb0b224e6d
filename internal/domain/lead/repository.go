package lead

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows a lead listing
type Filter struct {
	Status *Status
	Limit  int
	Offset int
}

// Store is the lead persistence contract
type Store interface {
	Insert(ctx context.Context, p *Payload) (*Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	ListAll(ctx context.Context) ([]Lead, error)
	List(ctx context.Context, f Filter) ([]Lead, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

// Repository handles lead data access
type Repository struct {
	db *gorm.DB
}

// NewRepository creates lead repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new lead built from the payload and returns the saved row
func (r *Repository) Insert(ctx context.Context, p *Payload) (*Lead, error) {
	lead, err := p.ToLead()
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// GetByID retrieves lead by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	var lead Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// ListAll returns every lead, newest first
func (r *Repository) ListAll(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&leads).Error
	return leads, err
}

// List returns leads with optional status filter
func (r *Repository) List(ctx context.Context, f Filter) ([]Lead, int64, error) {
	var leads []Lead
	var total int64

	db := r.db.WithContext(ctx).Model(&Lead{})
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if err := q.Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// UpdateStatus updates lead status
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res := r.db.WithContext(ctx).Model(&Lead{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// CountByStatus returns lead counts by status
func (r *Repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int64, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
