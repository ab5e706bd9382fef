package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// IDs fijos de los datos de demostración.
const (
	DemoEmployeeID    = "7d0f3c2e-5a1b-4c8d-9e2f-1a2b3c4d5e6f"
	DemoEmployeeEmail = "admin@pos.local"
	DemoClientID      = "3b9e1f7a-2c4d-4e6f-8a1b-9c0d1e2f3a4b"
)

// SeedDemo carga un empleado administrador, un cliente y un catálogo pequeño para desarrollo sin base de datos.
// passwordHash es el hash bcrypt de la contraseña del empleado.
func SeedDemo(s *Store, passwordHash string) {
	now := time.Now().UTC()
	s.AddEmployee(entity.Employee{
		ID:           DemoEmployeeID,
		Name:         "Administrador",
		Email:        DemoEmployeeEmail,
		PasswordHash: passwordHash,
		Role:         entity.RoleAdmin,
		Status:       entity.EmployeeStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	s.AddClient(entity.Client{
		ID:        DemoClientID,
		Name:      "Juan Pérez",
		TaxID:     "1234567-8",
		Email:     "juan.perez@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	})
	products := []struct {
		id, code, name, price string
		stock                 int64
	}{
		{"0a1b2c3d-0000-4000-8000-000000000001", "P001", "Café molido 500g", "45.00", 40},
		{"0a1b2c3d-0000-4000-8000-000000000002", "P002", "Azúcar 1kg", "12.50", 100},
		{"0a1b2c3d-0000-4000-8000-000000000003", "P003", "Leche entera 1L", "9.75", 60},
		{"0a1b2c3d-0000-4000-8000-000000000004", "P004", "Pan de caja", "18.00", 25},
	}
	for _, p := range products {
		s.AddProduct(entity.Product{
			ID:        p.id,
			Code:      p.code,
			Name:      p.name,
			Price:     decimal.RequireFromString(p.price),
			Stock:     p.stock,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
}
