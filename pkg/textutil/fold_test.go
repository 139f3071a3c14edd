package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urufarma/lims-web/pkg/textutil"
)

func TestFold_IgnoraTildesYMayusculas(t *testing.T) {
	assert.Equal(t, textutil.Fold("analisis"), textutil.Fold("ANÁLISIS"))
	assert.Equal(t, "solucion", textutil.Fold("Solución"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, textutil.ContainsFold("OM-2026-001", "om-2026"))
	assert.True(t, textutil.ContainsFold("Fisicoquímico", "quimico"))
	assert.True(t, textutil.ContainsFold("lo que sea", "  "))
	assert.False(t, textutil.ContainsFold("L26001", "L27"))
}

func TestMatchAny(t *testing.T) {
	assert.True(t, textutil.MatchAny("l26", "OM-1", "L26001"))
	assert.False(t, textutil.MatchAny("zz", "OM-1", "L26001"))
	assert.True(t, textutil.MatchAny("", "OM-1"))
}
