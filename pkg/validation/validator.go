package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// Errors use JSON tag names so clients see the field names they sent.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindingReasons converts binding/validator errors into the reason list used
// by the validation envelope. Malformed JSON collapses into a single reason.
func BindingReasons(err error) []string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []string{"Request body is not valid JSON."}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fe.Field()+" "+reasonFor(fe))
		}
		return out
	}

	return []string{"Invalid request payload."}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required."
	case "email":
		return "must be a valid email."
	case "min":
		return "must be at least " + fe.Param() + "."
	case "max":
		return "must be at most " + fe.Param() + "."
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	default:
		return "is invalid."
	}
}
