package service

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// TournamentInput 為建立與更新共用的原始表單欄位
type TournamentInput struct {
	Name  string `form:"name" json:"name" validate:"required,printable_text,max=100"`
	Date  string `form:"date" json:"date" validate:"required,calendar_time"`
	BuyIn string `form:"buyIn" json:"buyIn" validate:"whole_number,not_negative"`
}

// RegisterInput 為註冊表單欄位，Name 可空
type RegisterInput struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"min=6,bcrypt_len"`
	Name     string `form:"name" json:"name"`
}

// tournamentFields 為驗證通過後的型別化欄位
type tournamentFields struct {
	Name  string
	Date  time.Time
	BuyIn int64
}

// 欄位 + tag 對應的錯誤訊息
var fieldMessages = map[string]string{
	"name.required":       "please enter a tournament name",
	"name.printable_text": "tournament name contains characters that cannot be saved",
	"name.max":            "tournament name must be 100 characters or fewer",
	"date.required":       "please enter a valid date and time",
	"date.calendar_time":  "please enter a valid date and time",
	"buyIn.whole_number":  "buy-in must be a whole number",
	"buyIn.not_negative":  "buy-in must be 0 or greater",
	"email.required":      "please enter a valid email address",
	"email.email":         "please enter a valid email address",
	"password.min":        "password must be at least 6 characters",
	"password.bcrypt_len": "password must be 72 bytes or fewer",
}

// bcrypt 只接受 72 bytes 以內的密碼
const maxPasswordBytes = 72

// printableText 拒絕無效 UTF-8 與控制字元（含 NUL）
func printableText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

var errNotWholeNumber = errors.New("not a whole number")

// 不帶時區的格式以設定的時區解讀
var (
	zonedLayouts = []string{time.RFC3339Nano}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// parseDate 解析日期時間並正規化為 UTC
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// 2^53，超過此值的浮點數無法精確表示整數
const maxExactFloat = 1 << 53

// parseBuyIn 將表單字串轉為整數；空白視為 0，接受 "12.0"、"1e3" 等整數值寫法
func parseBuyIn(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return 0, errNotWholeNumber
	}
	return int64(f), nil
}

// newValidator 建立註冊了自訂規則的 validator；欄位名稱取自 form tag
func newValidator(loc *time.Location) *validator.Validate {
	if loc == nil {
		loc = time.UTC
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("calendar_time", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String(), loc)
		return err == nil
	})
	_ = v.RegisterValidation("printable_text", func(fl validator.FieldLevel) bool {
		return printableText(fl.Field().String())
	})
	_ = v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	_ = v.RegisterValidation("whole_number", func(fl validator.FieldLevel) bool {
		_, err := parseBuyIn(fl.Field().String())
		return err == nil
	}, true)
	_ = v.RegisterValidation("not_negative", func(fl validator.FieldLevel) bool {
		n, err := parseBuyIn(fl.Field().String())
		return err == nil && n >= 0
	}, true)
	return v
}

// firstViolation 只回傳第一個違反的規則訊息
func firstViolation(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return validationError("invalid input")
	}
	fe := errs[0]
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return validationError(msg)
	}
	return validationError(fe.Field() + " is invalid")
}

func validateTournament(v *validator.Validate, loc *time.Location, in TournamentInput) (tournamentFields, error) {
	if err := v.Struct(in); err != nil {
		return tournamentFields{}, firstViolation(err)
	}
	date, err := parseDate(in.Date, loc)
	if err != nil {
		return tournamentFields{}, validationError(fieldMessages["date.calendar_time"])
	}
	buyIn, err := parseBuyIn(in.BuyIn)
	if err != nil {
		return tournamentFields{}, validationError(fieldMessages["buyIn.whole_number"])
	}
	return tournamentFields{Name: in.Name, Date: date, BuyIn: buyIn}, nil
}
