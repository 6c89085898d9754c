package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个字段校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 拼接所有错误消息
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 以 key=message 形式拼接所有错误
func (v ValidErrors) MapsToString() string {
	var pairs []string
	for _, err := range v {
		pairs = append(pairs, err.Key+"="+err.Message)
	}
	return strings.Join(pairs, ",")
}

// BindAndValid binds request params and validates them
// BindAndValid 绑定请求参数并校验
// 校验消息经 lang 中间件注入的翻译器翻译为请求语言
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "params", Message: err.Error()})
		return false, errs
	}

	obj, ok := c.Get("trans")
	if !ok {
		for _, verr := range verrs {
			errs = append(errs, &ValidError{Key: verr.Field(), Message: verr.Error()})
		}
		return false, errs
	}

	trans := obj.(ut.Translator)
	for key, value := range verrs.Translate(trans) {
		errs = append(errs, &ValidError{
			Key:     key,
			Message: value,
		})
	}

	return false, errs
}
