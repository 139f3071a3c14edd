package dto

import "github.com/shopspring/decimal"

// CreatePowderRequest body para POST /inventario/polvos.
type CreatePowderRequest struct {
	Name string  `json:"nombre"`
	Code *string `json:"codigo"`
	Unit string  `json:"unidad"`
}

// UpdatePowderRequest body para PUT /inventario/polvos/{id}.
type UpdatePowderRequest struct {
	Name string `json:"nombre"`
}

// MediumRequest body para alta y edición de medios preparados.
type MediumRequest struct {
	Name     string          `json:"nombre"`
	Type     string          `json:"tipo"`
	VolumeML decimal.Decimal `json:"volumen_ml"`
}
