package domain

type PeriodKind string

const (
	PeriodActive PeriodKind = "active"
	PeriodBreak  PeriodKind = "break"
	PeriodIdle   PeriodKind = "idle"
)

// StatusView selects which catalog entities an aggregate includes.
type StatusView string

const (
	// ViewActive includes a period only when both its sphere and its
	// tag's owning entity are active.
	ViewActive StatusView = "active"
	// ViewArchived includes a period when either its sphere or its
	// tag's owning entity is archived.
	ViewArchived StatusView = "archived"
	// ViewAll includes every period unconditionally.
	ViewAll StatusView = "all"
)

type EntityStatus string

const (
	EntityActive   EntityStatus = "active"
	EntityArchived EntityStatus = "archived"
)
