package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
)

// StructValidator envolve go-playground/validator e converte ValidationErrors
// numa lista de problemas por campo. Todos os campos inválidos são reportados
// numa única resposta.
type StructValidator struct {
	v *validator.Validate
}

// NewStructValidator constrói o validador; nomes de campo vêm da tag json.
func NewStructValidator() *StructValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &StructValidator{v: v}
}

// Validate devolve nil quando a struct passa; caso contrário, o problema
// estruturado pronto para responder com HTTP 400.
func (sv *StructValidator) Validate(i any) *dto.ValidationProblem {
	err := sv.v.Struct(i)
	if err == nil {
		return nil
	}
	problem := &dto.ValidationProblem{Code: "VALIDATION", Errors: map[string][]string{}}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			problem.Errors[field] = append(problem.Errors[field], fieldError(fe))
		}
		return problem
	}
	problem.Errors["_"] = []string{err.Error()}
	return problem
}

// fieldError converte um ValidationError numa mensagem legível.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", field)
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s deve ter exatamente %s caracteres", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s deve conter apenas dígitos", field)
	case "eqfield":
		return fmt.Sprintf("%s deve ser igual a %s", field, strings.ToLower(fe.Param()))
	case "uuid4":
		return fmt.Sprintf("%s deve ser um UUID válido", field)
	default:
		return fmt.Sprintf("%s falhou na validação (%s)", field, fe.Tag())
	}
}
