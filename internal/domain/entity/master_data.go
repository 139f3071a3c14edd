package entity

import "github.com/shopspring/decimal"

// Equipment equipo o instrumento del laboratorio.
type Equipment struct {
	ID       int64  `json:"equipo_instrumento_id"`
	Code     string `json:"codigo"`
	Name     string `json:"nombre"`
	TypeID   int64  `json:"tipo_equipo_id"`
	StatusID int64  `json:"estado_equipo_id"`
	AreaID   int64  `json:"area_id"`
}

// Plant planta / ubicación física.
type Plant struct {
	ID       int64  `json:"planta_id"`
	Code     string `json:"codigo"`
	Name     string `json:"nombre"`
	SystemID int64  `json:"sistema_id"`
	Active   bool   `json:"activo"`
}

// SampleRequest solicitud de muestreo.
type SampleRequest struct {
	ID              int64     `json:"solicitud_muestreo_id"`
	UserID          int64     `json:"usuario_id"`
	Type            string    `json:"tipo"`
	OrderID         *int64    `json:"orden_manufactura_id,omitempty"`
	EquipmentID     *int64    `json:"equipo_instrumento_id,omitempty"`
	SamplingPointID *int64    `json:"punto_muestreo_id,omitempty"`
	OperatorID      *int64    `json:"operario_id,omitempty"`
	RequestStatusID int64     `json:"estado_solicitud_id"`
	Note            string    `json:"observacion,omitempty"`
	Date            Timestamp `json:"fecha"`
}

// Analysis análisis de laboratorio tal como lo gestiona la pantalla de análisis.
type Analysis struct {
	ID          int64     `json:"analisis_id"`
	Type        string    `json:"tipo_analisis"`
	OperatorID  *int64    `json:"operario_id,omitempty"`
	Description string    `json:"descripcion,omitempty"`
	StatusID    int64     `json:"estado_analisis_id,omitempty"`
	LastChange  Timestamp `json:"ultimo_cambio"`
}

// Powder polvo o suplemento del inventario.
type Powder struct {
	ID     int64  `json:"polvo_suplemento_id"`
	Code   string `json:"codigo"`
	Name   string `json:"nombre"`
	Unit   string `json:"unidad"`
	Active bool   `json:"activo"`
}

// Medium medio de cultivo preparado.
type Medium struct {
	ID       int64           `json:"medio_preparado_id"`
	Code     string          `json:"codigo,omitempty"`
	Name     string          `json:"nombre"`
	Type     string          `json:"tipo,omitempty"`
	VolumeML decimal.Decimal `json:"volumen_ml"`
	Active   bool            `json:"activo"`
}

// MediaStock lote de medio en stock.
type MediaStock struct {
	ID            int64  `json:"stock_medios_id"`
	PrepOrderID   int64  `json:"orden_preparacion_medio_id"`
	InternalBatch string `json:"lote_interno"`
	Expires       string `json:"vence"`
	QCStatusID    int64  `json:"estado_qc_id"`
}
