package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/domain/entity"
)

func TestNewSession_NormalizaRoles(t *testing.T) {
	s := entity.NewSession("1", "admin", []string{"administrador", " ", "administrador", "supervisor"}, time.Time{})
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleSupervisor}, s.Roles)
}

func TestSession_Intersects(t *testing.T) {
	s := entity.NewSession("1", "ana", []string{"analista"}, time.Time{})

	assert.True(t, s.Intersects(entity.RoleAdmin, entity.RoleAnalyst))
	assert.False(t, s.Intersects(entity.RoleAdmin, entity.RoleOperator))
	assert.False(t, s.Intersects(), "sin candidatos no hay intersección")
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, entity.NewSession("1", "a", nil, now.Add(-time.Second)).Expired(now))
	assert.False(t, entity.NewSession("1", "a", nil, now.Add(time.Hour)).Expired(now))
	assert.False(t, entity.NewSession("1", "a", nil, time.Time{}).Expired(now), "sin exp no vence")
}

func TestSession_InitialsYRolPrincipal(t *testing.T) {
	assert.Equal(t, "AD", entity.NewSession("1", "admin", []string{"operador"}, time.Time{}).Initials())
	assert.Equal(t, "US", entity.NewSession("1", "", nil, time.Time{}).Initials())
	assert.Equal(t, "sin rol", entity.NewSession("1", "x", nil, time.Time{}).PrimaryRole())
}

func TestTimestamp_AceptaFormatosDelBackend(t *testing.T) {
	var v struct {
		A entity.Timestamp `json:"a"`
		B entity.Timestamp `json:"b"`
		C entity.Timestamp `json:"c"`
		D entity.Timestamp `json:"d"`
	}
	raw := `{"a":"2026-02-10T08:30:00","b":"2026-02-10T08:30:00Z","c":null,"d":"2026-02-10"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	assert.Equal(t, 8, v.A.Hour())
	assert.Equal(t, time.UTC, v.B.Location())
	assert.True(t, v.C.IsZero())
	assert.Equal(t, 10, v.D.Day())

	var bad struct {
		A entity.Timestamp `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a":"ayer"}`), &bad))
}

func history(ts ...time.Time) []entity.StateHistoryEntry {
	out := make([]entity.StateHistoryEntry, 0, len(ts))
	for i, t := range ts {
		out = append(out, entity.StateHistoryEntry{ID: int64(i + 1), StateID: int64(i + 1), Timestamp: entity.NewTimestamp(t)})
	}
	return out
}

func TestSortHistory_MasAntiguoPrimero(t *testing.T) {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	h := history(base.Add(2*time.Hour), base, base.Add(time.Hour))

	entity.SortHistory(h)

	for i := 1; i < len(h); i++ {
		assert.False(t, h[i].Timestamp.Before(h[i-1].Timestamp.Time), "timestamps no decrecientes")
	}
	assert.Equal(t, int64(2), h[0].StateID)
	assert.Equal(t, int64(1), h[2].StateID)
}

func TestHistoryConsistent(t *testing.T) {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	h := history(base, base.Add(time.Hour))

	assert.True(t, entity.HistoryConsistent(entity.ManufacturingProcess{StateID: 2}, h))
	assert.False(t, entity.HistoryConsistent(entity.ManufacturingProcess{StateID: 1}, h), "última entrada distinta al estado actual")
	assert.False(t, entity.HistoryConsistent(entity.ManufacturingProcess{StateID: 1}, nil))

	desordenado := history(base.Add(time.Hour), base)
	assert.False(t, entity.HistoryConsistent(entity.ManufacturingProcess{StateID: 2}, desordenado))
}

func TestStateCatalog(t *testing.T) {
	c := entity.NewStateCatalog([]entity.ManufacturingState{{ID: 2, Name: "en proceso"}, {ID: 1, Name: "pendiente"}})

	assert.Equal(t, "pendiente", c.Name(1))
	assert.Equal(t, "#9", c.Name(9))
	sorted := c.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, int64(1), sorted[0].ID)
}
