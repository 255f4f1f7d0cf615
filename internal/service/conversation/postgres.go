package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/jinzhu/gorm/dialects/postgres"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// PostgresRecord is the conversations table row. The whole conversation is
// kept as JSONB; active and updated_at are columns so cleanup can filter.
type PostgresRecord struct {
	ID             uint           `gorm:"primary_key"`
	ConversationID string         `gorm:"column:conversation_id;type:varchar(64);unique_index;not null"`
	Active         bool           `gorm:"column:active;default:true;index"`
	Data           postgres.Jsonb `gorm:"column:data"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;index"`
}

// TableName implements gorm's tabler.
func (PostgresRecord) TableName() string { return "conversations" }

// PostgresStore implements Store with gorm on Postgres.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open gorm handle.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates or updates the conversations table.
func (s *PostgresStore) Migrate() error {
	return s.db.AutoMigrate(&PostgresRecord{}).Error
}

func encodeData(c *Conversation) (postgres.Jsonb, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return postgres.Jsonb{}, err
	}
	return postgres.Jsonb{RawMessage: data}, nil
}

func (s *PostgresStore) Create(ctx context.Context, c *Conversation) error {
	data, err := encodeData(c)
	if err != nil {
		return err
	}
	row := PostgresRecord{
		ConversationID: c.ID,
		Active:         c.Active,
		Data:           data,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if err := s.db.Create(&row).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Conversation, error) {
	var row PostgresRecord
	res := s.db.Where("conversation_id = ?", id).First(&row)
	if res.RecordNotFound() {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}

	var c Conversation
	if err := json.Unmarshal(row.Data.RawMessage, &c); err != nil {
		return nil, err
	}
	c.ID = row.ConversationID
	c.Active = row.Active
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return &c, nil
}

func (s *PostgresStore) Save(ctx context.Context, c *Conversation) error {
	data, err := encodeData(c)
	if err != nil {
		return err
	}
	res := s.db.Model(&PostgresRecord{}).
		Where("conversation_id = ?", c.ID).
		Updates(map[string]any{
			"data":       data,
			"active":     c.Active,
			"updated_at": c.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error) {
	res := s.db.Model(&PostgresRecord{}).
		Where("active = ? AND updated_at < ?", true, cutoff).
		UpdateColumn("active", false)
	return int(res.RowsAffected), res.Error
}

// Compile-time interface check
var _ Store = (*PostgresStore)(nil)
