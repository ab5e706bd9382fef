package entity

import "time"

// Client representa un cliente registrado. Es opcional en una venta.
type Client struct {
	ID        string
	Name      string
	TaxID     string // NIT
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
