package stubapi

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/urufarma/lims-web/internal/domain/entity"
)

// table colección en memoria con ids autoincrementales.
type table[T any] struct {
	rows map[int64]T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T), next: 1}
}

func (t *table[T]) insert(build func(id int64) T) T {
	id := t.next
	t.next++
	v := build(id)
	t.rows[id] = v
	return v
}

func (t *table[T]) get(id int64) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id int64, v T) { t.rows[id] = v }

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list filas ordenadas por id, con filtro opcional.
func (t *table[T]) list(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v := t.rows[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// user cuenta del backend simulado.
type user struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	Roles        []string
	Active       bool
}

type storedDocument struct {
	entity.Document
	Content []byte
}

// Store base de datos en memoria del backend simulado.
type Store struct {
	mu        sync.RWMutex
	now       func() time.Time
	users     *table[user]
	equipment *table[entity.Equipment]
	plants    *table[entity.Plant]
	samples   *table[entity.SampleRequest]
	analyses  *table[entity.Analysis]
	powders   *table[entity.Powder]
	media     *table[entity.Medium]
	stock     *table[entity.MediaStock]
	orders    *table[entity.ManufacturingOrder]
	processes *table[entity.ManufacturingProcess]
	history   *table[entity.StateHistoryEntry]
	documents *table[storedDocument]
	states    []entity.ManufacturingState
}

// SeedUser usuario inicial.
type SeedUser struct {
	Username string
	Password string
	Name     string
	Roles    []string
}

// DefaultUsers un usuario por rol conocido; admin/admin123 es el de los tests e2e.
var DefaultUsers = []SeedUser{
	{Username: "admin", Password: "admin123", Name: "Administrador", Roles: []string{"administrador"}},
	{Username: "supervisor", Password: "super123", Name: "Supervisora de Planta", Roles: []string{"supervisor"}},
	{Username: "analista", Password: "analista123", Name: "Analista QC", Roles: []string{"analista"}},
	{Username: "operador", Password: "operador123", Name: "Operario", Roles: []string{"operador"}},
}

// NewStore crea el store con datos de ejemplo. bcrypt.MinCost mantiene rápidos los tests.
func NewStore(users []SeedUser, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		now:       now,
		users:     newTable[user](),
		equipment: newTable[entity.Equipment](),
		plants:    newTable[entity.Plant](),
		samples:   newTable[entity.SampleRequest](),
		analyses:  newTable[entity.Analysis](),
		powders:   newTable[entity.Powder](),
		media:     newTable[entity.Medium](),
		stock:     newTable[entity.MediaStock](),
		orders:    newTable[entity.ManufacturingOrder](),
		processes: newTable[entity.ManufacturingProcess](),
		history:   newTable[entity.StateHistoryEntry](),
		documents: newTable[storedDocument](),
		states: []entity.ManufacturingState{
			{ID: 1, Name: "pendiente"},
			{ID: 2, Name: "en proceso"},
			{ID: 3, Name: "pausado"},
			{ID: 4, Name: "finalizado"},
			{ID: 5, Name: "cancelado"},
		},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		s.users.insert(func(id int64) user {
			return user{ID: id, Username: u.Username, Name: u.Name, PasswordHash: string(hash), Roles: u.Roles, Active: true}
		})
	}
	s.seed()
	return s, nil
}

func (s *Store) seed() {
	now := s.now()
	s.equipment.insert(func(id int64) entity.Equipment {
		return entity.Equipment{ID: id, Code: "EQ-001", Name: "Autoclave vertical", TypeID: 1, StatusID: 1, AreaID: 1}
	})
	s.equipment.insert(func(id int64) entity.Equipment {
		return entity.Equipment{ID: id, Code: "EQ-002", Name: "Incubadora 37°C", TypeID: 2, StatusID: 1, AreaID: 2}
	})
	s.plants.insert(func(id int64) entity.Plant {
		return entity.Plant{ID: id, Code: "PL-N", Name: "Planta Norte", SystemID: 1, Active: true}
	})
	s.powders.insert(func(id int64) entity.Powder {
		return entity.Powder{ID: id, Code: "PS-01", Name: "Agar base", Unit: "g", Active: true}
	})
	s.media.insert(func(id int64) entity.Medium {
		return entity.Medium{ID: id, Code: "MP-01", Name: "Agar sangre", Type: "agar", VolumeML: decimal.NewFromInt(500), Active: true}
	})
	s.stock.insert(func(id int64) entity.MediaStock {
		return entity.MediaStock{ID: id, PrepOrderID: 1, InternalBatch: "LI-0001", Expires: now.AddDate(0, 1, 0).Format("2006-01-02"), QCStatusID: 1}
	})
	s.samples.insert(func(id int64) entity.SampleRequest {
		eq := int64(1)
		return entity.SampleRequest{ID: id, UserID: 1, Type: "Ambiental", EquipmentID: &eq, RequestStatusID: 1, Date: entity.NewTimestamp(now)}
	})
	s.analyses.insert(func(id int64) entity.Analysis {
		return entity.Analysis{ID: id, Type: "microbiologico", Description: "Recuento total", StatusID: 1, LastChange: entity.NewTimestamp(now)}
	})

	order := s.orders.insert(func(id int64) entity.ManufacturingOrder {
		return entity.ManufacturingOrder{
			ID: id, Code: "OM-0001", BatchCode: "L-2026-001", Date: now.Format("2006-01-02"),
			ProductID: 1, Quantity: decimal.NewFromInt(250), Unit: "kg", OperatorID: 4,
		}
	})
	proc := s.processes.insert(func(id int64) entity.ManufacturingProcess {
		return entity.ManufacturingProcess{ID: id, OrderID: order.ID, StateID: 1, StartTime: entity.NewTimestamp(now)}
	})
	s.appendHistory(proc.ID, 1, 1, now.Add(-time.Hour))
	s.changeState(proc.ID, 2, 1, now)
}

func (s *Store) appendHistory(processID, stateID, userID int64, at time.Time) entity.StateHistoryEntry {
	return s.history.insert(func(id int64) entity.StateHistoryEntry {
		return entity.StateHistoryEntry{
			ID: id, ProcessID: processID, StateID: stateID, StateName: s.stateName(stateID),
			ChangedByID: userID, Timestamp: entity.NewTimestamp(at),
		}
	})
}

// changeState aplica el cambio y registra la entrada de historial. Sin lock: lo toma el llamador.
func (s *Store) changeState(processID, stateID, userID int64, at time.Time) entity.ManufacturingProcess {
	p := s.processes.rows[processID]
	p.StateID = stateID
	p.StateName = s.stateName(stateID)
	if s.closedState(stateID) {
		p.EndTime = entity.NewTimestamp(at)
	}
	s.processes.put(processID, p)
	s.appendHistory(processID, stateID, userID, at)
	return p
}

func (s *Store) stateName(id int64) string {
	for _, st := range s.states {
		if st.ID == id {
			return st.Name
		}
	}
	return ""
}

func (s *Store) closedState(id int64) bool {
	name := s.stateName(id)
	return name == "finalizado" || name == "cancelado"
}

func (s *Store) findUser(username string) (user, bool) {
	for _, u := range s.users.rows {
		if u.Username == username {
			return u, true
		}
	}
	return user{}, false
}
