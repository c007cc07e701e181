// Package record defines the single text record the application manages.
package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EmptySentinel is what a read returns when no record is stored.
const EmptySentinel = "Database is empty"

var (
	// ErrNotFound is returned by stores when the record row is absent.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyContent rejects writes whose trimmed content is empty.
	ErrEmptyContent = errors.New("content is empty")
)

// Record is the persisted row. CreatedAt is assigned by the store's clock on every write.
type Record struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;column:id" bson:"_id"`
	Content   string    `json:"content" gorm:"type:text;column:content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at" bson:"createdAt"`
}

// Location names where the record lives: a namespace (keyspace, schema or database)
// and a table (or collection) inside it.
type Location struct {
	Namespace string
	Table     string
}

// DefaultLocation matches the schema the application has always used.
var DefaultLocation = Location{Namespace: "prototype", Table: "data"}

// Qualified returns "namespace.table".
func (l Location) Qualified() string {
	return l.Namespace + "." + l.Table
}
