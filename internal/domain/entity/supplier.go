package entity

import "time"

// Supplier representa un proveedor (contraparte de facturas de compra).
type Supplier struct {
	ID        string
	Name      string
	Document  string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
