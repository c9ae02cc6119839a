// Package validate holds the declarative form schemas checked before any
// network call. Field messages mirror what the backend-facing UI shows.
package validate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	must(val.RegisterValidation("hasletter", hasClass(unicode.IsLetter)))
	must(val.RegisterValidation("hasdigit", hasClass(unicode.IsDigit)))
	must(val.RegisterValidation("hasspecial", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return true
			}
		}
		return false
	}))
	must(val.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	}))
	return val
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func hasClass(class func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), class)
	}
}

// Form is one validatable input schema. message resolves a failed rule to
// the user-facing string for that field.
type Form interface {
	normalize()
	message(field, tag string) string
}

// Check trims the form and validates it, returning field-level messages
// keyed by lowercase field name, or nil when the form is valid.
func Check(form Form) map[string][]string {
	form.normalize()
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	fieldErrors := make(map[string][]string)
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())
		fieldErrors[field] = append(fieldErrors[field], form.message(field, fe.Tag()))
	}
	return fieldErrors
}

type LoginForm struct {
	Username string `form:"username" validate:"required,min=2"`
	Password string `form:"password" validate:"required,min=8,hasletter,hasdigit,hasspecial"`
}

func (f *LoginForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)
}

func (f *LoginForm) message(field, tag string) string {
	switch field {
	case "username":
		return "유저명은 2개 이상의 문자로 작성되어야 합니다"
	case "password":
		switch tag {
		case "hasletter":
			return "비밀번호는 1개 이상의 문자를 작성해야 합니다."
		case "hasdigit":
			return "비밀번호는 1개 이상의 숫자를 포함해야 합니다."
		case "hasspecial":
			return "비밀번호는 1개 이상의 특수문자를 포함해야 합니다."
		default:
			return "비밀번호는 8글자 이상이어야 합니다."
		}
	}
	return "잘못된 입력입니다."
}

type SignupForm struct {
	Email    string `form:"email" validate:"required,email"`
	Username string `form:"username" validate:"required,min=4,max=16,nospace"`
	Password string `form:"password" validate:"required,min=8,max=16,hasletter,hasdigit,hasspecial,nospace"`
}

func (f *SignupForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)
}

func (f *SignupForm) message(field, tag string) string {
	switch field {
	case "email":
		if tag == "required" {
			return "이메일을 입력하세요."
		}
		return "잘못된 이메일 형식입니다."
	case "username":
		switch tag {
		case "max":
			return "유저명은 16자 이하여야 합니다."
		case "nospace":
			return "유저명에는 공백을 사용할 수 없습니다."
		default:
			return "유저명은 4자 이상이어야 합니다."
		}
	case "password":
		switch tag {
		case "max":
			return "비밀번호는 16자 이하여야 합니다."
		case "hasletter":
			return "비밀번호는 1개 이상의 문자를 포함해야 합니다."
		case "hasdigit":
			return "비밀번호는 1개 이상의 숫자를 포함해야 합니다."
		case "hasspecial":
			return "비밀번호는 1개 이상의 특수문자를 포함해야 합니다."
		case "nospace":
			return "비밀번호에는 공백을 사용할 수 없습니다."
		default:
			return "비밀번호는 8글자 이상이어야 합니다."
		}
	}
	return "잘못된 입력입니다."
}

type CommentForm struct {
	Content string `form:"content" json:"content" validate:"required,max=1000"`
}

func (f *CommentForm) normalize() {}

func (f *CommentForm) message(field, tag string) string {
	if tag == "max" {
		return "내용은 1000자 이하여야 합니다."
	}
	return "내용은 1자 이상이어야 합니다."
}
