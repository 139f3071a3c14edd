package dto

// DashboardStats respuesta de GET /dashboard/stats: contadores y series del panel principal.
type DashboardStats struct {
	ActiveEquipment  int64         `json:"equipos_activos"`
	PendingAnalyses  int64         `json:"analisis_pendientes"`
	SamplesToday     int64         `json:"muestras_hoy"`
	AnalysesByStatus []StatusCount `json:"analisis_por_estado"`
	SamplesLastWeek  []DayCount    `json:"muestras_semana"`
}

// StatusCount punto de la serie "análisis por estado".
type StatusCount struct {
	Status string `json:"estado"`
	Count  int64  `json:"count"`
}

// DayCount punto de la serie "muestras últimos 7 días".
type DayCount struct {
	Date  string `json:"fecha"`
	Count int64  `json:"count"`
}
