package ports

import (
	"context"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

// Puertos de salida hacia el backend REST del LIMS. Cada método es exactamente un request;
// no hay reintentos ni caché. Los errores HTTP llegan como *limsapi.APIError, que
// responde a errors.Is con los sentinelas de domain.

// AuthService intercambia credenciales por un token de acceso.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// EquipmentService CRUD de equipos e instrumentos.
type EquipmentService interface {
	List(ctx context.Context) ([]entity.Equipment, error)
	Get(ctx context.Context, id int64) (*entity.Equipment, error)
	Create(ctx context.Context, in dto.EquipmentRequest) (*entity.Equipment, error)
	Update(ctx context.Context, id int64, in dto.EquipmentRequest) (*entity.Equipment, error)
	Delete(ctx context.Context, id int64) error
}

// PlantService CRUD de plantas.
type PlantService interface {
	List(ctx context.Context) ([]entity.Plant, error)
	Get(ctx context.Context, id int64) (*entity.Plant, error)
	Create(ctx context.Context, in dto.PlantRequest) (*entity.Plant, error)
	Update(ctx context.Context, id int64, in dto.PlantRequest) (*entity.Plant, error)
	Delete(ctx context.Context, id int64) error
}

// SampleService solicitudes de muestreo.
type SampleService interface {
	List(ctx context.Context) ([]entity.SampleRequest, error)
	Create(ctx context.Context, in dto.CreateSampleRequest) (*entity.SampleRequest, error)
	Update(ctx context.Context, id int64, in dto.UpdateSampleRequest) (*entity.SampleRequest, error)
	Delete(ctx context.Context, id int64) error
}

// AnalysisService análisis de laboratorio.
type AnalysisService interface {
	List(ctx context.Context, page dto.PageRequest) ([]entity.Analysis, error)
	Get(ctx context.Context, id int64) (*entity.Analysis, error)
	Create(ctx context.Context, in dto.CreateAnalysisRequest) (*entity.Analysis, error)
	Update(ctx context.Context, id int64, in dto.UpdateAnalysisRequest) (*entity.Analysis, error)
	Delete(ctx context.Context, id int64) error
}

// InventoryService polvos/suplementos, medios preparados y stock de medios.
type InventoryService interface {
	ListPowders(ctx context.Context) ([]entity.Powder, error)
	CreatePowder(ctx context.Context, in dto.CreatePowderRequest) (*entity.Powder, error)
	UpdatePowder(ctx context.Context, id int64, in dto.UpdatePowderRequest) (*entity.Powder, error)
	DeletePowder(ctx context.Context, id int64) error
	ListMedia(ctx context.Context) ([]entity.Medium, error)
	CreateMedium(ctx context.Context, in dto.MediumRequest) (*entity.Medium, error)
	UpdateMedium(ctx context.Context, id int64, in dto.MediumRequest) (*entity.Medium, error)
	ListStock(ctx context.Context) ([]entity.MediaStock, error)
}

// ManufacturingService órdenes, procesos, cambios de estado e historial.
type ManufacturingService interface {
	ListOrders(ctx context.Context, page dto.PageRequest) ([]entity.ManufacturingOrder, error)
	CreateOrder(ctx context.Context, in dto.OrderRequest) (*entity.ManufacturingOrder, error)
	UpdateOrder(ctx context.Context, id int64, in dto.OrderRequest) (*entity.ManufacturingOrder, error)
	DeleteOrder(ctx context.Context, id int64) error
	ListProcesses(ctx context.Context, page dto.PageRequest) ([]entity.ManufacturingProcess, error)
	ListOrderProcesses(ctx context.Context, orderID int64) ([]entity.ManufacturingProcess, error)
	CreateProcess(ctx context.Context, in dto.CreateProcessRequest) (*entity.ManufacturingProcess, error)
	ChangeState(ctx context.Context, processID int64, in dto.StateChangeRequest) (*entity.ManufacturingProcess, error)
	History(ctx context.Context, processID int64) ([]entity.StateHistoryEntry, error)
	States(ctx context.Context) ([]entity.ManufacturingState, error)
}

// DashboardService KPIs del panel principal.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

// DocumentService adjuntos de equipos y plantas.
type DocumentService interface {
	Upload(ctx context.Context, in dto.UploadDocumentRequest) (*entity.Document, error)
	ListByEntity(ctx context.Context, entityType string, entityID int64) ([]entity.Document, error)
	Download(ctx context.Context, id int64) (*dto.DownloadedDocument, error)
	Delete(ctx context.Context, id int64) error
}

// ExportService exportaciones CSV generadas por el backend.
type ExportService interface {
	Equipment(ctx context.Context) (*dto.Export, error)
	Plants(ctx context.Context) (*dto.Export, error)
	ManufacturingOrders(ctx context.Context) (*dto.Export, error)
}
