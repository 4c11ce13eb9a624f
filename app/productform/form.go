package productform

import (
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/codegym/product-catalog/catalogapi"
	"github.com/codegym/product-catalog/locale"
	"github.com/codegym/product-catalog/models"
)

// Form holds the add-product inputs exactly as the user typed them.
type Form struct {
	Code       string `form:"code" validate:"notblank,prodcode"`
	Name       string `form:"name" validate:"notblank"`
	ImportDate string `form:"importDate" validate:"notblank,datetime=2006-01-02,notfuture"`
	Quantity   string `form:"quantity" validate:"notblank,posint"`
	Price      string `form:"price" validate:"notblank,posnum"`
	CategoryID string `form:"categoryId" validate:"notblank"`
}

// FormFromRequest reads the form fields of a parsed POST request.
func FormFromRequest(r *http.Request) Form {
	return Form{
		Code:       r.PostFormValue("code"),
		Name:       r.PostFormValue("name"),
		ImportDate: r.PostFormValue("importDate"),
		Quantity:   r.PostFormValue("quantity"),
		Price:      r.PostFormValue("price"),
		CategoryID: r.PostFormValue("categoryId"),
	}
}

// Errors maps a form field name to the message shown under it.
type Errors map[string]string

var messages = map[string]map[string]string{
	"code": {
		"notblank": "Mã sản phẩm không được để trống!",
		"prodcode": "Mã sản phẩm phải đúng định dạng PROD-XXXX!",
	},
	"name": {
		"notblank": "Tên sản phẩm không được để trống!",
	},
	"importDate": {
		"notblank":  "Vui lòng chọn ngày nhập!",
		"datetime":  "Ngày nhập không hợp lệ!",
		"notfuture": "Ngày nhập không được lớn hơn ngày hiện tại!",
	},
	"quantity": {
		"notblank": "Vui lòng nhập số lượng!",
		"posint":   "Số lượng phải là số nguyên lớn hơn 0!",
	},
	"price": {
		"notblank": "Vui lòng nhập giá!",
		"posnum":   "Giá phải là số lớn hơn 0!",
	},
	"categoryId": {
		"notblank": "Vui lòng chọn loại sản phẩm!",
	},
}

// Validator checks a Form against the catalog's field rules. "Today" is
// taken from now, in now's location.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	pv := &Validator{v: validator.New(), now: now}

	pv.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	must := func(tag string, fn validator.Func) {
		if err := pv.v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	must("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	must("prodcode", func(fl validator.FieldLevel) bool {
		return models.CodePattern.MatchString(fl.Field().String())
	})
	must("notfuture", pv.notFuture)
	must("posint", func(fl validator.FieldLevel) bool {
		_, ok := parsePositiveInt(fl.Field().String())
		return ok
	})
	must("posnum", func(fl validator.FieldLevel) bool {
		_, ok := parsePositive(fl.Field().String())
		return ok
	})
	return pv
}

func (pv *Validator) notFuture(fl validator.FieldLevel) bool {
	now := pv.now()
	d, err := time.ParseInLocation(locale.DateLayout, fl.Field().String(), now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	return !d.After(time.Date(y, m, day, 0, 0, 0, 0, now.Location()))
}

// Validate recomputes the complete error set for f. Each invalid field
// gets exactly one message; an empty result means f may be submitted.
func (pv *Validator) Validate(f Form) Errors {
	errs := Errors{}
	err := pv.v.Struct(f)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs[""] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		msg := messages[fe.Field()][fe.Tag()]
		if msg == "" {
			msg = fe.Error()
		}
		errs[fe.Field()] = msg
	}
	return errs
}

// Product converts a validated form into a create request.
func (f Form) Product() (catalogapi.NewProduct, error) {
	qty, ok := parsePositiveInt(f.Quantity)
	if !ok {
		return catalogapi.NewProduct{}, fmt.Errorf("quantity %q is not a positive integer", f.Quantity)
	}
	price, ok := parsePositive(f.Price)
	if !ok {
		return catalogapi.NewProduct{}, fmt.Errorf("price %q is not a positive number", f.Price)
	}
	return catalogapi.NewProduct{
		Code:       f.Code,
		Name:       f.Name,
		ImportDate: f.ImportDate,
		Quantity:   qty,
		Price:      price,
		CategoryID: catalogapi.ID(strings.TrimSpace(f.CategoryID)),
	}, nil
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// parsePositiveInt accepts any numeral with an integral value, so "5" and
// "5.0" are both 5.
func parsePositiveInt(s string) (int, bool) {
	v, ok := parsePositive(s)
	if !ok || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
