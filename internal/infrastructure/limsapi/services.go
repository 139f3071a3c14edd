package limsapi

import "github.com/urufarma/lims-web/internal/application/ports"

// Services agrupa los servicios de recursos sobre un mismo cliente (y token).
type Services struct {
	Auth          ports.AuthService
	Equipment     ports.EquipmentService
	Plants        ports.PlantService
	Samples       ports.SampleService
	Analyses      ports.AnalysisService
	Inventory     ports.InventoryService
	Manufacturing ports.ManufacturingService
	Dashboard     ports.DashboardService
	Documents     ports.DocumentService
	Exports       ports.ExportService
}

// NewServices construye todos los servicios sobre c.
func NewServices(c *Client) *Services {
	return &Services{
		Auth:          NewAuthService(c),
		Equipment:     NewEquipmentService(c),
		Plants:        NewPlantService(c),
		Samples:       NewSampleService(c),
		Analyses:      NewAnalysisService(c),
		Inventory:     NewInventoryService(c),
		Manufacturing: NewManufacturingService(c),
		Dashboard:     NewDashboardService(c),
		Documents:     NewDocumentService(c),
		Exports:       NewExportService(c),
	}
}
