package dto

import "github.com/shopspring/decimal"

// OrderRequest body para crear/editar una orden de manufactura.
type OrderRequest struct {
	Code       string          `json:"codigo"`
	BatchCode  string          `json:"lote"`
	Date       string          `json:"fecha"`
	ProductID  int64           `json:"producto_id"`
	Quantity   decimal.Decimal `json:"cantidad"`
	Unit       string          `json:"unidad"`
	OperatorID int64           `json:"operario_id"`
}

// CreateProcessRequest body para POST /manufactura/procesos.
type CreateProcessRequest struct {
	OrderID int64   `json:"orden_manufactura_id"`
	StateID int64   `json:"estado_manufactura_id"`
	Note    *string `json:"observacion"`
}

// StateChangeRequest body para POST /manufactura/procesos/{id}/estado.
type StateChangeRequest struct {
	NewStateID int64 `json:"nuevo_estado_id"`
	UserID     int64 `json:"usuario_id"`
}
