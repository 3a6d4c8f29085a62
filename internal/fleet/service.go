// Package fleet is the record service: it orchestrates authorization,
// validation and the store for every mutation of the four entity kinds.
// The service is stateless; all shared state lives in the database and
// every multi-step write runs inside one transaction.
package fleet

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet-service/internal/authz"
	"fleet-service/internal/model"
)

// Actor is the authenticated identity performing an operation. It is
// threaded explicitly through every call; the service never consults
// ambient session state.
type Actor struct {
	ID       uint
	Username string
	Role     model.Role
}

// Service exposes create/update/delete operations per entity kind plus
// the read-side aggregates. Safe for concurrent use.
type Service struct {
	db *gorm.DB
}

// New returns a record service backed by the given database handle.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) authorize(actor Actor, action authz.Action) error {
	if !authz.Allowed(actor.Role, action) {
		return ErrDenied
	}
	return nil
}

// requireActor gates read-side aggregates: any authenticated actor with a
// recognized role may call them.
func (s *Service) requireActor(actor Actor) error {
	if !model.ValidRole(actor.Role) {
		return ErrDenied
	}
	return nil
}

// fieldTaken runs a uniqueness pre-check for a friendly error message.
// The unique index enforced at commit time remains the safety mechanism.
func (s *Service) fieldTaken(entity interface{}, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(entity).Where(fmt.Sprintf("%s = ?", column), value)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, persistence(err)
	}
	return count > 0, nil
}

// storeError maps a failed write to the service error taxonomy.
func storeError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return persistence(err)
}
