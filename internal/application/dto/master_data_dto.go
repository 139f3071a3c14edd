package dto

// EquipmentRequest body para crear/editar un equipo.
type EquipmentRequest struct {
	Code     string `json:"codigo"`
	Name     string `json:"nombre"`
	TypeID   int64  `json:"tipo_equipo_id"`
	StatusID int64  `json:"estado_equipo_id"`
	AreaID   int64  `json:"area_id"`
}

// PlantRequest body para crear/editar una planta.
type PlantRequest struct {
	Code     string `json:"codigo"`
	Name     string `json:"nombre"`
	SystemID int64  `json:"sistema_id"`
	Active   bool   `json:"activo"`
}

// CreateSampleRequest body para POST /muestreo/solicitudes.
// UserID lo completa el cliente con el usuario de la sesión.
type CreateSampleRequest struct {
	UserID          int64   `json:"usuario_id"`
	Type            string  `json:"tipo"`
	EquipmentID     *int64  `json:"equipo_instrumento_id"`
	RequestStatusID int64   `json:"estado_solicitud_id"`
	Note            *string `json:"observacion"`
}

// UpdateSampleRequest body para PUT /muestreo/solicitudes/{id}.
type UpdateSampleRequest struct {
	Note *string `json:"observacion"`
}

// CreateAnalysisRequest body para POST /analisis/.
type CreateAnalysisRequest struct {
	Type        string  `json:"tipo_analisis"`
	OperatorID  *int64  `json:"operario_id"`
	Description *string `json:"descripcion"`
}

// UpdateAnalysisRequest body para PUT /analisis/{id}.
type UpdateAnalysisRequest struct {
	Description *string `json:"descripcion"`
}
