package validation

import (
	"github.com/urufarma/lims-web/internal/application/dto"
)

// Formularios de la interfaz. Todos los campos son texto crudo tal como llega del
// input HTML; Validate los recorta y valida, y Payload arma el body tipado del backend.
// Llamar a Payload sólo después de una validación sin errores.

// SampleTypes, AnalysisTypes y MediumTypes alimentan los selects de las vistas.
var (
	SampleTypes   = []string{"Ambiental", "Producto", "Proceso", "Personal", "Agua"}
	AnalysisTypes = []string{"microbiologico", "fisicoquimico", "ambiental", "producto"}
	MediumTypes   = []string{"agar", "caldo", "solución", "buffer"}
)

// LoginForm credenciales.
type LoginForm struct {
	Username string `form:"username" validate:"required" msg:"required=El usuario es obligatorio"`
	Password string `form:"password" validate:"required" msg:"required=La contraseña es obligatoria"`
}

func (f LoginForm) Payload() dto.LoginRequest {
	return dto.LoginRequest{Username: f.Username, Password: f.Password}
}

// EquipmentForm alta/edición de equipos.
type EquipmentForm struct {
	Code     string `form:"codigo" validate:"required,max=50" msg:"required=El código es obligatorio;max=Máximo 50 caracteres"`
	Name     string `form:"nombre" validate:"required,max=100" msg:"required=El nombre es obligatorio;max=Máximo 100 caracteres"`
	TypeID   string `form:"tipo_equipo_id" validate:"posint" msg:"posint=Tipo de equipo inválido"`
	StatusID string `form:"estado_equipo_id" validate:"posint" msg:"posint=Estado de equipo inválido"`
	AreaID   string `form:"area_id" validate:"posint" msg:"posint=Área inválida"`
}

func (f EquipmentForm) Payload() dto.EquipmentRequest {
	return dto.EquipmentRequest{
		Code:     f.Code,
		Name:     f.Name,
		TypeID:   toInt(f.TypeID),
		StatusID: toInt(f.StatusID),
		AreaID:   toInt(f.AreaID),
	}
}

// PlantForm alta/edición de plantas. Active llega de un select "true"/"false"; ausente vale true.
type PlantForm struct {
	Code     string `form:"codigo" validate:"required,max=20" msg:"required=El código es obligatorio;max=Máximo 20 caracteres"`
	Name     string `form:"nombre" validate:"required,max=100" msg:"required=El nombre es obligatorio;max=Máximo 100 caracteres"`
	SystemID string `form:"sistema_id" validate:"posint" msg:"posint=Sistema inválido"`
	Active   string `form:"activo"`
}

func (f PlantForm) Payload() dto.PlantRequest {
	return dto.PlantRequest{
		Code:     f.Code,
		Name:     f.Name,
		SystemID: toInt(f.SystemID),
		Active:   f.Active != "false" && f.Active != "0",
	}
}

// SampleForm nueva solicitud de muestreo.
type SampleForm struct {
	Type            string `form:"tipo" validate:"oneof=Ambiental Producto Proceso Personal Agua" msg:"oneof=Seleccioná un tipo de muestreo válido"`
	EquipmentID     string `form:"equipo_instrumento_id" validate:"omitempty,posint" msg:"posint=Equipo inválido"`
	Note            string `form:"observacion" validate:"max=500" msg:"max=Máximo 500 caracteres"`
	RequestStatusID string `form:"estado_solicitud_id" validate:"omitempty,posint" msg:"posint=Estado inválido"`
}

// Payload usa userID de la sesión actual como solicitante.
func (f SampleForm) Payload(userID int64) dto.CreateSampleRequest {
	status := int64(1)
	if f.RequestStatusID != "" {
		status = toInt(f.RequestStatusID)
	}
	return dto.CreateSampleRequest{
		UserID:          userID,
		Type:            f.Type,
		EquipmentID:     toOptionalInt(f.EquipmentID),
		RequestStatusID: status,
		Note:            toOptionalText(f.Note),
	}
}

// SampleEditForm edición de una solicitud (sólo observación).
type SampleEditForm struct {
	Note string `form:"observacion" validate:"max=500" msg:"max=Máximo 500 caracteres"`
}

func (f SampleEditForm) Payload() dto.UpdateSampleRequest {
	return dto.UpdateSampleRequest{Note: toOptionalText(f.Note)}
}

// AnalysisForm nuevo análisis.
type AnalysisForm struct {
	Type        string `form:"tipo_analisis" validate:"oneof=microbiologico fisicoquimico ambiental producto" msg:"oneof=Seleccioná un tipo de análisis válido"`
	OperatorID  string `form:"operario_id" validate:"omitempty,posint" msg:"posint=El ID de operario debe ser positivo"`
	Description string `form:"descripcion" validate:"max=1000" msg:"max=Máximo 1000 caracteres"`
}

func (f AnalysisForm) Payload() dto.CreateAnalysisRequest {
	return dto.CreateAnalysisRequest{
		Type:        f.Type,
		OperatorID:  toOptionalInt(f.OperatorID),
		Description: toOptionalText(f.Description),
	}
}

// AnalysisEditForm edición de un análisis (sólo descripción).
type AnalysisEditForm struct {
	Description string `form:"descripcion" validate:"max=1000" msg:"max=Máximo 1000 caracteres"`
}

func (f AnalysisEditForm) Payload() dto.UpdateAnalysisRequest {
	return dto.UpdateAnalysisRequest{Description: toOptionalText(f.Description)}
}

// PowderForm alta de polvo/suplemento.
type PowderForm struct {
	Name string `form:"nombre" validate:"required,max=100" msg:"required=El nombre es obligatorio;max=Máximo 100 caracteres"`
	Code string `form:"codigo" validate:"max=50" msg:"max=Máximo 50 caracteres"`
	Unit string `form:"unidad" validate:"required,max=20" msg:"required=La unidad es obligatoria;max=Máximo 20 caracteres"`
}

func (f PowderForm) Payload() dto.CreatePowderRequest {
	return dto.CreatePowderRequest{Name: f.Name, Code: toOptionalText(f.Code), Unit: f.Unit}
}

// PowderEditForm edición de polvo (sólo nombre).
type PowderEditForm struct {
	Name string `form:"nombre" validate:"required,max=100" msg:"required=El nombre es obligatorio;max=Máximo 100 caracteres"`
}

func (f PowderEditForm) Payload() dto.UpdatePowderRequest {
	return dto.UpdatePowderRequest{Name: f.Name}
}

// MediumForm alta/edición de medio preparado.
type MediumForm struct {
	Name     string `form:"nombre" validate:"required,max=100" msg:"required=El nombre es obligatorio;max=Máximo 100 caracteres"`
	Type     string `form:"tipo" validate:"oneof=agar caldo solución buffer" msg:"oneof=Seleccioná un tipo válido"`
	VolumeML string `form:"volumen_ml" validate:"posnum" msg:"posnum=El volumen debe ser un número positivo"`
}

func (f MediumForm) Payload() dto.MediumRequest {
	return dto.MediumRequest{Name: f.Name, Type: f.Type, VolumeML: toDecimal(f.VolumeML)}
}

// OrderForm alta/edición de orden de manufactura.
type OrderForm struct {
	Code       string `form:"codigo" validate:"required,max=50" msg:"required=El código es obligatorio;max=Máximo 50 caracteres"`
	BatchCode  string `form:"lote" validate:"required,max=50" msg:"required=El lote es obligatorio;max=Máximo 50 caracteres"`
	Date       string `form:"fecha" validate:"required,isodate" msg:"required=La fecha es obligatoria;isodate=Fecha inválida (AAAA-MM-DD)"`
	ProductID  string `form:"producto_id" validate:"posint" msg:"posint=El ID de producto debe ser positivo"`
	Quantity   string `form:"cantidad" validate:"posnum" msg:"posnum=La cantidad debe ser un número positivo"`
	Unit       string `form:"unidad" validate:"required,max=20" msg:"required=La unidad es obligatoria;max=Máximo 20 caracteres"`
	OperatorID string `form:"operario_id" validate:"posint" msg:"posint=El ID de operario debe ser positivo"`
}

func (f OrderForm) Payload() dto.OrderRequest {
	return dto.OrderRequest{
		Code:       f.Code,
		BatchCode:  f.BatchCode,
		Date:       f.Date,
		ProductID:  toInt(f.ProductID),
		Quantity:   toDecimal(f.Quantity),
		Unit:       f.Unit,
		OperatorID: toInt(f.OperatorID),
	}
}

// ProcessForm alta de proceso de manufactura.
type ProcessForm struct {
	OrderID string `form:"orden_manufactura_id" validate:"posint" msg:"posint=El ID de orden debe ser positivo"`
	StateID string `form:"estado_manufactura_id" validate:"posint" msg:"posint=El estado debe ser positivo"`
	Note    string `form:"observacion" validate:"max=500" msg:"max=Máximo 500 caracteres"`
}

func (f ProcessForm) Payload() dto.CreateProcessRequest {
	return dto.CreateProcessRequest{
		OrderID: toInt(f.OrderID),
		StateID: toInt(f.StateID),
		Note:    toOptionalText(f.Note),
	}
}

// StateChangeForm cambio de estado de un proceso.
type StateChangeForm struct {
	NewStateID string `form:"nuevo_estado_id" validate:"posint" msg:"posint=El ID de estado debe ser positivo"`
	UserID     string `form:"usuario_id" validate:"posint" msg:"posint=El ID de usuario debe ser positivo"`
}

func (f StateChangeForm) Payload() dto.StateChangeRequest {
	return dto.StateChangeRequest{NewStateID: toInt(f.NewStateID), UserID: toInt(f.UserID)}
}

// DocumentForm metadatos de un adjunto; Size lo completa el handler desde el archivo.
type DocumentForm struct {
	EntityType string `form:"entidad_tipo" validate:"oneof=equipo planta" msg:"oneof=Entidad inválida"`
	EntityID   string `form:"entidad_id" validate:"posint" msg:"posint=Entidad inválida"`
	FileName   string `form:"file_name" validate:"required" msg:"required=Seleccioná un archivo"`
	Size       int64  `form:"file" validate:"gt=0,lte=52428800" msg:"gt=El archivo está vacío;lte=El archivo supera el máximo de 50 MB"`
}

// EntityRef id numérico de la entidad, ya validado.
func (f DocumentForm) EntityRef() int64 { return toInt(f.EntityID) }
