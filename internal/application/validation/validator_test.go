package validation_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/application/validation"
)

func validEquipment() validation.EquipmentForm {
	return validation.EquipmentForm{Code: "EQ-01", Name: "Autoclave", TypeID: "1", StatusID: "2", AreaID: "3"}
}

func TestEquipmentForm_Valido(t *testing.T) {
	f := validEquipment()
	f.Name = "  Autoclave  "

	errs := validation.Validate(&f)

	assert.True(t, errs.Empty())
	p := f.Payload()
	assert.Equal(t, "Autoclave", p.Name, "se recorta antes de enviar")
	assert.Equal(t, int64(1), p.TypeID)
	assert.Equal(t, int64(3), p.AreaID)
}

func TestEquipmentForm_NombreVacioTrasRecortar(t *testing.T) {
	f := validEquipment()
	f.Name = "   "

	errs := validation.Validate(&f)

	require.Len(t, errs, 1)
	assert.Equal(t, "El nombre es obligatorio", errs["nombre"])
}

func TestEquipmentForm_LongitudMaximaEnRunas(t *testing.T) {
	f := validEquipment()
	f.Code = strings.Repeat("ñ", 50)
	assert.True(t, validation.Validate(&f).Empty())

	f.Code = strings.Repeat("ñ", 51)
	assert.Equal(t, "Máximo 50 caracteres", validation.Validate(&f)["codigo"])
}

func TestPosint(t *testing.T) {
	cases := map[string]bool{
		"5":   true,
		"5.0": true,
		" 7 ": true,
		"0":   false,
		"-3":  false,
		"2.5": false,
		"abc": false,
		"":    false,

		"9223372036854775807":  true,
		"9223372036854775808":  false,
		"99999999999999999999": false,
		"1e30":                 false,
	}
	for in, ok := range cases {
		f := validEquipment()
		f.TypeID = in
		errs := validation.Validate(&f)
		if ok {
			assert.True(t, errs.Empty(), "%q debería ser válido", in)
		} else {
			assert.Equal(t, "Tipo de equipo inválido", errs["tipo_equipo_id"], "%q debería ser inválido", in)
		}
	}
}

func TestStateChangeForm_IDsGrandesSinPerdida(t *testing.T) {
	f := validation.StateChangeForm{NewStateID: "9007199254740993", UserID: "1"}
	require.True(t, validation.Validate(&f).Empty())
	assert.Equal(t, int64(9007199254740993), f.Payload().NewStateID)

	f = validation.StateChangeForm{NewStateID: "5.0", UserID: "1"}
	require.True(t, validation.Validate(&f).Empty())
	assert.Equal(t, int64(5), f.Payload().NewStateID)

	for _, in := range []string{"1e30", "99999999999999999999", "-9223372036854775808"} {
		f = validation.StateChangeForm{NewStateID: in, UserID: "1"}
		assert.Equal(t, "El ID de estado debe ser positivo", validation.Validate(&f)["nuevo_estado_id"], in)
	}
}

func TestSampleForm_TipoYOpcionales(t *testing.T) {
	f := validation.SampleForm{Type: "Muestra"}
	assert.Equal(t, "Seleccioná un tipo de muestreo válido", validation.Validate(&f)["tipo"])

	f = validation.SampleForm{Type: "Agua"}
	require.True(t, validation.Validate(&f).Empty())
	p := f.Payload(42)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, int64(1), p.RequestStatusID, "estado por defecto")
	assert.Nil(t, p.EquipmentID)
	assert.Nil(t, p.Note)

	f = validation.SampleForm{Type: "Agua", EquipmentID: "9", Note: strings.Repeat("x", 501)}
	assert.Equal(t, "Máximo 500 caracteres", validation.Validate(&f)["observacion"])
}

func TestAnalysisForm_OperarioOpcional(t *testing.T) {
	f := validation.AnalysisForm{Type: "microbiologico"}
	require.True(t, validation.Validate(&f).Empty())
	assert.Nil(t, f.Payload().OperatorID)

	f.OperatorID = "-1"
	assert.NotEmpty(t, validation.Validate(&f)["operario_id"])

	f = validation.AnalysisForm{Type: "quimico"}
	assert.Equal(t, "Seleccioná un tipo de análisis válido", validation.Validate(&f)["tipo_analisis"])
}

func TestMediumForm_VolumenDecimal(t *testing.T) {
	f := validation.MediumForm{Name: "Agar sangre", Type: "solución", VolumeML: "12.5"}
	require.True(t, validation.Validate(&f).Empty())
	assert.True(t, decimal.RequireFromString("12.5").Equal(f.Payload().VolumeML))

	f.VolumeML = "0"
	assert.Equal(t, "El volumen debe ser un número positivo", validation.Validate(&f)["volumen_ml"])
}

func TestOrderForm(t *testing.T) {
	f := validation.OrderForm{
		Code: "OM-1", BatchCode: "L-001", Date: "2026-03-01",
		ProductID: "4", Quantity: "100.5", Unit: "kg", OperatorID: "2",
	}
	require.True(t, validation.Validate(&f).Empty())
	p := f.Payload()
	assert.Equal(t, int64(4), p.ProductID)
	assert.Equal(t, "100.5", p.Quantity.String())

	f.Date = ""
	f.Quantity = "-1"
	errs := validation.Validate(&f)
	assert.Equal(t, "La fecha es obligatoria", errs["fecha"])
	assert.Equal(t, "La cantidad debe ser un número positivo", errs["cantidad"])

	f.Date = "2026-13-01"
	assert.Contains(t, validation.Validate(&f)["fecha"], "Fecha inválida")
}

func TestStateChangeForm(t *testing.T) {
	f := validation.StateChangeForm{NewStateID: "0", UserID: "x"}
	errs := validation.Validate(&f)
	assert.Equal(t, "El ID de estado debe ser positivo", errs["nuevo_estado_id"])
	assert.Equal(t, "El ID de usuario debe ser positivo", errs["usuario_id"])

	f = validation.StateChangeForm{NewStateID: "3", UserID: "1"}
	require.True(t, validation.Validate(&f).Empty())
	assert.Equal(t, int64(3), f.Payload().NewStateID)
}

func TestPlantForm_ActivoPorDefecto(t *testing.T) {
	f := validation.PlantForm{Code: "P1", Name: "Planta Norte", SystemID: "1"}
	require.True(t, validation.Validate(&f).Empty())
	assert.True(t, f.Payload().Active)

	f.Active = "false"
	assert.False(t, f.Payload().Active)
}

func TestDocumentForm_Limites(t *testing.T) {
	f := validation.DocumentForm{EntityType: "equipo", EntityID: "1", FileName: "manual.pdf", Size: 51 << 20}
	assert.Equal(t, "El archivo supera el máximo de 50 MB", validation.Validate(&f)["file"])

	f.Size = 1024
	f.EntityType = "orden"
	assert.Equal(t, "Entidad inválida", validation.Validate(&f)["entidad_tipo"])
}

func TestLoginForm(t *testing.T) {
	f := validation.LoginForm{Username: " ", Password: ""}
	errs := validation.Validate(&f)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs.Error(), "validación")
}
