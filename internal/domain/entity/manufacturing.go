package entity

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// ManufacturingOrder unidad de producción que se traza a través de uno o más procesos.
type ManufacturingOrder struct {
	ID         int64           `json:"orden_manufactura_id"`
	Code       string          `json:"codigo"`
	BatchCode  string          `json:"lote"`
	Date       string          `json:"fecha"` // YYYY-MM-DD
	ProductID  int64           `json:"producto_id"`
	Quantity   decimal.Decimal `json:"cantidad"`
	Unit       string          `json:"unidad"`
	OperatorID int64           `json:"operario_id"`
}

// ManufacturingProcess registro de trabajo con estado que pertenece a una orden.
// Su estado sólo cambia mediante un cambio de estado explícito (que agrega historial).
type ManufacturingProcess struct {
	ID        int64     `json:"manufactura_id"`
	OrderID   int64     `json:"orden_manufactura_id"`
	StateID   int64     `json:"estado_manufactura_id"`
	StateName string    `json:"estado_nombre,omitempty"`
	StartTime Timestamp `json:"fecha_inicio"`
	EndTime   Timestamp `json:"fecha_fin"`
	Note      string    `json:"observacion,omitempty"`
}

// ManufacturingState entrada del catálogo de estados (ids opacos con nombre visible).
type ManufacturingState struct {
	ID   int64  `json:"estado_manufactura_id"`
	Name string `json:"nombre"`
}

// StateHistoryEntry registro inmutable de una transición de estado.
type StateHistoryEntry struct {
	ID          int64     `json:"historico_id"`
	ProcessID   int64     `json:"manufactura_id"`
	StateID     int64     `json:"estado_manufactura_id"`
	StateName   string    `json:"estado_nombre,omitempty"`
	ChangedByID int64     `json:"usuario_id"`
	Timestamp   Timestamp `json:"fecha"`
}

// StateCatalog resuelve ids de estado a nombres.
type StateCatalog map[int64]string

// NewStateCatalog indexa el catálogo por id.
func NewStateCatalog(states []ManufacturingState) StateCatalog {
	c := make(StateCatalog, len(states))
	for _, s := range states {
		c[s.ID] = s.Name
	}
	return c
}

// Name devuelve el nombre del estado o "#id" si el catálogo no lo conoce.
func (c StateCatalog) Name(id int64) string {
	if n, ok := c[id]; ok && n != "" {
		return n
	}
	return "#" + strconv.FormatInt(id, 10)
}

// Sorted catálogo ordenado por id, para selects.
func (c StateCatalog) Sorted() []ManufacturingState {
	out := make([]ManufacturingState, 0, len(c))
	for id, name := range c {
		out = append(out, ManufacturingState{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SortHistory ordena el historial del más antiguo al más reciente.
// Estable: entradas con el mismo timestamp conservan el orden recibido.
func SortHistory(entries []StateHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp.Time)
	})
}

// HistoryConsistent verifica que el historial esté ordenado y que su última entrada
// coincida con el estado actual del proceso. Un historial vacío no es consistente.
func HistoryConsistent(p ManufacturingProcess, entries []StateHistoryEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp.Time) {
			return false
		}
	}
	return entries[len(entries)-1].StateID == p.StateID
}
