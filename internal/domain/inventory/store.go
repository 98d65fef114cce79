package inventory

import (
	"strings"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Store is a physical outlet or depot that holds stock
type Store struct {
	shared.TenantAggregateRoot
	Name        string
	Location    string
	ManagerID   *uuid.UUID
	PhoneNumber string
	IsActive    bool
}

// NewStore creates an active store
func NewStore(tenantID uuid.UUID, name, location string, managerID *uuid.UUID, phone string, createdBy uuid.UUID) (*Store, error) {
	s := &Store{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		ManagerID:           managerID,
		PhoneNumber:         strings.TrimSpace(phone),
		IsActive:            true,
	}
	if err := s.setName(name); err != nil {
		return nil, err
	}
	if err := s.setLocation(location); err != nil {
		return nil, err
	}
	s.AddDomainEvent(NewStoreCreatedEvent(s))
	return s, nil
}

func (s *Store) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Store name must be 1-200 characters")
	}
	s.Name = name
	return nil
}

func (s *Store) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" || len(location) > 300 {
		return shared.NewDomainError("INVALID_LOCATION", "Store location must be 1-300 characters")
	}
	s.Location = location
	return nil
}

// StoreUpdate is a partial store update; nil fields are left alone
type StoreUpdate struct {
	Name        *string
	Location    *string
	ManagerID   *uuid.UUID
	PhoneNumber *string
	IsActive    *bool
}

// Update applies a partial update. Nothing changes if any field is invalid.
func (s *Store) Update(u StoreUpdate) error {
	next := *s
	if u.Name != nil {
		if err := next.setName(*u.Name); err != nil {
			return err
		}
	}
	if u.Location != nil {
		if err := next.setLocation(*u.Location); err != nil {
			return err
		}
	}
	if u.ManagerID != nil {
		manager := *u.ManagerID
		next.ManagerID = &manager
	}
	if u.PhoneNumber != nil {
		next.PhoneNumber = strings.TrimSpace(*u.PhoneNumber)
	}
	if u.IsActive != nil {
		next.IsActive = *u.IsActive
	}

	s.Name, s.Location, s.ManagerID = next.Name, next.Location, next.ManagerID
	s.PhoneNumber, s.IsActive = next.PhoneNumber, next.IsActive
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Deactivate closes the store. Its stock rows and history are kept.
func (s *Store) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Store is already inactive")
	}
	s.IsActive = false
	s.Touch()
	s.IncrementVersion()
	return nil
}
