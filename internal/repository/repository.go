package repository

import "gorm.io/gorm"

// Repository aggregates all repositories behind one injection point.
type Repository struct {
	Identity IdentityRepository
	Employee EmployeeRepository
	Lead     LeadRepository
}

// NewRepository builds the repository aggregate over a GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Identity: NewIdentityRepo(db),
		Employee: NewEmployeeRepo(db),
		Lead:     NewLeadRepo(db),
	}
}
