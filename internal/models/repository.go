// Package models provides the core data structures shared across the enumeration, scanning and reporting stages.
package models

// CommonRepository is the subset of a repository listing entry needed to build a Repository.
type CommonRepository struct {
	Name     *string `json:"name,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Owner    *struct {
		Login *string `json:"login,omitempty"`
	} `json:"owner,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// Repository identifies a repository to scan.
type Repository struct {
	Owner string
	Name  string
	// Push reports whether the identity may push to the repository.
	// Only meaningful for organization repositories.
	Push bool
}

// Key returns the "owner/name" form of the repository.
func (r Repository) Key() string {
	return r.Owner + "/" + r.Name
}

// ToRepository converts a listing entry into a Repository.
func (c CommonRepository) ToRepository() Repository {
	r := Repository{Push: c.Permissions["push"]}
	if c.Name != nil {
		r.Name = *c.Name
	}
	if c.Owner != nil && c.Owner.Login != nil {
		r.Owner = *c.Owner.Login
	}
	return r
}
