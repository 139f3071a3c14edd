package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha que envían los inputs type=date.
const DateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New()
	mustRegister("posint", isPositiveInt)
	mustRegister("posnum", isPositiveNumber)
	mustRegister("isodate", isISODate)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registrar %s: %v", tag, err))
	}
}

// FieldErrors mensajes por campo, indexados por el nombre del input (igual al campo JSON).
type FieldErrors map[string]string

// Empty true si el formulario es válido.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Error permite devolver FieldErrors como error.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, v := range fe {
		parts = append(parts, k+": "+v)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// defaultMessages mensajes por tag cuando el campo no define uno propio en `msg`.
var defaultMessages = map[string]string{
	"required": "Campo requerido",
	"max":      "Máximo %s caracteres",
	"oneof":    "Valor inválido",
	"posint":   "Debe ser un número positivo",
	"posnum":   "Debe ser un número positivo",
	"isodate":  "Fecha inválida",
	"lte":      "Debe ser menor o igual a %s",
}

// Validate recorta los campos de texto del formulario (in place) y lo valida.
// form debe ser un puntero a struct. Devuelve nil si no hay errores.
func Validate(form any) FieldErrors {
	trimStrings(form)

	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}
	structType := reflect.TypeOf(form).Elem()
	out := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		field, _ := structType.FieldByName(e.StructField())
		name := fieldName(field)
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = parseMessage(field, e)
	}
	return out
}

func fieldName(f reflect.StructField) string {
	if tag := strings.Split(f.Tag.Get("form"), ",")[0]; tag != "" && tag != "-" {
		return tag
	}
	return strings.ToLower(f.Name)
}

// parseMessage busca primero en el tag `msg` del campo ("required=...;max=...").
func parseMessage(f reflect.StructField, e validator.FieldError) string {
	for _, pair := range strings.Split(f.Tag.Get("msg"), ";") {
		tag, msg, ok := strings.Cut(pair, "=")
		if ok && strings.TrimSpace(tag) == e.Tag() {
			return strings.TrimSpace(msg)
		}
	}
	if msg, ok := defaultMessages[e.Tag()]; ok {
		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, e.Param())
		}
		return msg
	}
	return "Valor inválido"
}

func trimStrings(form any) {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// isPositiveInt acepta texto numérico entero y > 0 ("5", "5.0"). Vacío es inválido;
// para campos opcionales usar omitempty antes.
func isPositiveInt(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String {
		n, ok := parseInt64(fl.Field().String())
		return ok && n > 0
	}
	n, ok := parseNumber(fl.Field())
	return ok && n > 0 && n == math.Trunc(n)
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// parseInt64 entero exacto que entra en int64. "5.0" y "5e2" valen; "1e30" o
// "9007199254740993.5" no.
func parseInt64(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() || d.Abs().GreaterThan(maxInt64) {
		return 0, false
	}
	return d.IntPart(), true
}

func isPositiveNumber(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		n, ok := parseNumber(fl.Field())
		return ok && n > 0
	}
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.IsPositive()
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func parseNumber(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

// toInt convierte un campo ya validado con posint.
func toInt(s string) int64 {
	n, _ := parseInt64(s)
	return n
}

// toOptionalInt vacío o 0 → nil.
func toOptionalInt(s string) *int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n := toInt(s)
	if n == 0 {
		return nil
	}
	return &n
}

func toDecimal(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(s))
	return d
}

// toOptionalText vacío → nil (el backend guarda null).
func toOptionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
