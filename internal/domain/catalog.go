package domain

import "time"

// Sphere is a top-level life-area category (e.g. Work, Personal) under
// which projects are grouped.
type Sphere struct {
	ID         string
	Name       string
	Status     EntityStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Project is a label assignable to active periods, owned by a sphere.
type Project struct {
	ID         string
	SphereID   string
	Name       string
	Status     EntityStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BreakAction is a label assignable to break and idle periods.
type BreakAction struct {
	ID         string
	Name       string
	Status     EntityStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
