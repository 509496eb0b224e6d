package lead

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents lead review status
type Status string

const (
	StatusPending    Status = "Pendente"
	StatusInProgress Status = "Em Andamento"
	StatusDone       Status = "Finalizada"
	StatusCancelled  Status = "Cancelada"
)

// Statuses lists every valid status in workflow order
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone, StatusCancelled}

// Valid returns true for one of the known statuses
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lead is a persisted quote request
type Lead struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"not null" json:"email"`
	CampaignOptions   []string   `gorm:"serializer:json;not null" json:"campaign_options"`
	Budget            int        `gorm:"not null" json:"budget"`
	MainObjective     string     `gorm:"not null" json:"main_objective"`
	StartDate         *time.Time `gorm:"type:date" json:"start_date"`
	EndDate           *time.Time `gorm:"type:date" json:"end_date"`
	Products          *string    `json:"products"`
	AdditionalDetails *string    `json:"additional_details"`
	Status            Status     `gorm:"not null;default:'Pendente';index" json:"status"`
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies table name for GORM
func (Lead) TableName() string {
	return "quote_requests"
}

// BeforeCreate assigns an id when the caller did not
func (l *Lead) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = StatusPending
	}
	return nil
}
