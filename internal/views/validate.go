package views

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"adminhub/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// requestValidator checks request bodies with the same `binding` rules the
// server applies, so obviously bad input never leaves the console.
func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// checkRequest reports the first failing field as a ValidationError.
func checkRequest(req any) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return domain.ValidationError{Field: fe.Field(), Msg: "kural ihlali: " + rule}
	}
	return domain.ValidationError{Msg: err.Error()}
}
