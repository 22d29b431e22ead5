package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/leadcapture/lead-service/internal/transport/http/response"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	// Report the json tag name instead of the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct validates a request DTO, translating tag failures into
// field-level errors for a 400 response. Returns nil when valid.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &response.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, response.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(trans),
		})
	}
	return out
}
