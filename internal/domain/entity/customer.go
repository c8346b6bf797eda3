package entity

import "time"

// Customer representa un cliente (contraparte de facturas de venta).
type Customer struct {
	ID        string
	Name      string
	Document  string // NIT o cédula
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
