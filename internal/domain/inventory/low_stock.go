package inventory

import "github.com/shopspring/decimal"

// IsLowStock determina si una existencia está en o por debajo del umbral
// mínimo del producto (servicio de dominio).
func IsLowStock(quantity, minStock decimal.Decimal) bool {
	return quantity.LessThanOrEqual(minStock)
}

// ValidateThresholds verifica el invariante de umbrales de un producto:
// MinStock >= 0 y, si MaxStock existe, MaxStock >= MinStock.
func ValidateThresholds(minStock decimal.Decimal, maxStock *decimal.Decimal) bool {
	if minStock.IsNegative() {
		return false
	}
	if maxStock != nil && maxStock.LessThan(minStock) {
		return false
	}
	return true
}
