package entity

// Document adjunto asociado a una entidad (equipo, planta).
type Document struct {
	ID         int64     `json:"documento_id"`
	Name       string    `json:"nombre"`
	MimeType   string    `json:"tipo_mime"`
	SizeBytes  int64     `json:"tamano_bytes"`
	EntityType string    `json:"entidad_tipo"`
	EntityID   int64     `json:"entidad_id"`
	UserID     int64     `json:"usuario_id"`
	UploadedAt Timestamp `json:"fecha_subida"`
}
