package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/shopspring/decimal"
)

// maxMoney límite de numeric(18,2).
var maxMoney = decimal.New(1, 16)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los mensajes nombran el campo JSON, no el campo Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimal.Decimal se valida como float64 (gt=0, gte=0, ne=0).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("money", validMoney)
	return v
}

// validMoney exige a lo sumo dos decimales y que el monto quepa en numeric(18,2).
// Lee el decimal original del struct padre: el campo ya llega convertido a float64.
func validMoney(fl validator.FieldLevel) bool {
	f := fl.Parent().FieldByName(fl.StructFieldName())
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return true
		}
		f = f.Elem()
	}
	d, ok := f.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}

// ParseID valida que v sea un UUID y lo devuelve en forma canónica.
func ParseID(field, v string) (string, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return "", domain.Invalid("campo %s inválido (debe ser un UUID)", field)
	}
	return id.String(), nil
}

// Validate aplica las reglas `validate` del struct. Un fallo se devuelve como domain.ErrInvalidInput
// con el primer campo inválido en el mensaje.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.Invalid("solicitud inválida: %v", err)
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return domain.Invalid("campo %s inválido (%s)", field, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obligatorio"
	case "min", "gte":
		return fmt.Sprintf("mínimo %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "ne":
		return fmt.Sprintf("no puede ser %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("valores permitidos: %s", fe.Param())
	case "uuid":
		return "debe ser un UUID"
	case "money":
		return "máximo dos decimales"
	case "nefield":
		return fmt.Sprintf("debe ser distinto de %s", fe.Param())
	}
	return fe.Tag()
}
