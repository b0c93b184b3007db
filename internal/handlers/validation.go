package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// RegisterValidators teaches gin's validator about decimal amounts and ledger statuses.
// It is idempotent.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Decimals validate as float64 so gt/gte/required work on amounts.
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("ledgerstatus", validateLedgerStatus)
		_ = v.RegisterValidation("dpos", validatePositiveDecimal)
	})
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateLedgerStatus(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(domain.LedgerStatus)
	if !ok {
		s, isString := fl.Field().Interface().(string)
		if !isString {
			return false
		}
		status = domain.LedgerStatus(s)
	}
	return status.IsValid()
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return v.IsPositive()
	case float64:
		return v > 0
	}
	return false
}
