package handlers

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	errRequired     = "This field is required."
	errInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	errInvalidGroup = "Select a valid choice. That choice is not one of the available choices."
	nonFieldErrors  = "__all__"
)

// Form keeps the submitted values and the validation errors of a HTML form
type Form struct {
	Values map[string]string
	Errors map[string][]string
}

func NewForm() *Form {
	return &Form{
		Values: map[string]string{},
		Errors: map[string][]string{},
	}
}

func (f *Form) Value(name string) string {
	return f.Values[name]
}

func (f *Form) Set(name, value string) {
	f.Values[name] = value
}

func (f *Form) AddError(name, message string) {
	f.Errors[name] = append(f.Errors[name], message)
}

func (f *Form) FieldErrors(name string) []string {
	return f.Errors[name]
}

func (f *Form) NonFieldErrors() []string {
	return f.Errors[nonFieldErrors]
}

func (f *Form) HasError(name string) bool {
	return len(f.Errors[name]) > 0
}

func (f *Form) IsValid() bool {
	return len(f.Errors) == 0
}

// bindForm binds the request into obj and turns validation failures into field errors
func (f *Form) bindForm(c *gin.Context, obj any) {
	err := c.ShouldBind(obj)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.AddError(nonFieldErrors, err.Error())
		return
	}
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		name := fe.Field()
		if field, ok := t.FieldByName(fe.StructField()); ok {
			if tag := field.Tag.Get("form"); tag != "" {
				name = tag
			}
		}
		f.AddError(name, validationMessage(fe))
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return errRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	}
	return fe.Error()
}
