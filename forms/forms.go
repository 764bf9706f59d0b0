// Package forms declares one schema per input shape. Rules live in
// struct tags and are evaluated by go-playground/validator; failures come
// back as a ValidationError with one message per field.
package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type RegisterForm struct {
	Username        string `validate:"required,min=4,max=20"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type TodoForm struct {
	Title       string `validate:"required,max=100"`
	Description string
}

// ValidationError carries a user-facing message per failed field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// messages maps "<field>.<tag>" to the message shown to the user.
var messages = map[string]string{
	"Username.required":        "ユーザー名を入力してください。",
	"Username.min":             "ユーザー名は4文字以上20文字以下で入力してください。",
	"Username.max":             "ユーザー名は4文字以上20文字以下で入力してください。",
	"Password.required":        "パスワードを入力してください。",
	"ConfirmPassword.required": "パスワード確認を入力してください。",
	"ConfirmPassword.eqfield":  "パスワードが一致しません。",
	"Title.required":           "タイトルを入力してください。",
	"Title.max":                "タイトルは100文字以内で入力してください。",
}

var check = validator.New()

// Validate evaluates a form's rules. It returns nil on success and a
// *ValidationError when any rule fails.
func Validate(form any) error {
	err := check.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%sが不正です。", fe.Field())
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}
