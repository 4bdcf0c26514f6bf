package validator

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/cockroachdb/errors"
	playground "github.com/go-playground/validator/v10"
)

// echoのValidatorとして登録し、handlerからc.Validate(&req)で使う
type RequestValidator struct {
	v *playground.Validate
}

func NewRequestValidator() *RequestValidator {
	v := playground.New()
	// エラーはJSONのフィールド名で返す
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

// 最初のエラー項目を400で返す
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid "+fieldErrs[0].Field())
	}
	return usecase.NewHTTPError(http.StatusBadRequest, "invalid input")
}
