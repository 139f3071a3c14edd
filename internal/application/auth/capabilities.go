package auth

import "github.com/urufarma/lims-web/internal/domain/entity"

// Capability nombre de una acción de la interfaz que depende del rol.
type Capability string

const (
	CapEquipmentWrite     Capability = "equipment.write"
	CapEquipmentDelete    Capability = "equipment.delete"
	CapPlantWrite         Capability = "plant.write"
	CapPlantDelete        Capability = "plant.delete"
	CapSampleWrite        Capability = "sample.write"
	CapAnalysisWrite      Capability = "analysis.write"
	CapInventoryWrite     Capability = "inventory.write"
	CapManufacturingWrite Capability = "manufacturing.write"
	CapDocumentUpload     Capability = "document.upload"
	CapDocumentDelete     Capability = "document.delete"
)

var (
	adminOnly    = []entity.Role{entity.RoleAdmin}
	adminSup     = []entity.Role{entity.RoleAdmin, entity.RoleSupervisor}
	labRoles     = []entity.Role{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleAnalyst}
	plantRoles   = []entity.Role{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperator}
	allKnownRole = []entity.Role{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleAnalyst, entity.RoleOperator}
)

var capabilityRoles = map[Capability][]entity.Role{
	CapEquipmentWrite:     adminSup,
	CapEquipmentDelete:    adminOnly,
	CapPlantWrite:         adminSup,
	CapPlantDelete:        adminOnly,
	CapSampleWrite:        allKnownRole,
	CapAnalysisWrite:      labRoles,
	CapInventoryWrite:     labRoles,
	CapManufacturingWrite: plantRoles,
	CapDocumentUpload:     adminSup,
	CapDocumentDelete:     adminOnly,
}

// RequiredRoles roles que habilitan la capacidad. Una capacidad desconocida exige administrador.
func RequiredRoles(c Capability) []entity.Role {
	if roles, ok := capabilityRoles[c]; ok {
		return roles
	}
	return adminOnly
}

// Can atajo de Allowed por nombre de capacidad; es la función "can" de las vistas.
func Can(checker RoleChecker, c Capability) bool {
	return Allowed(checker, RequiredRoles(c))
}
