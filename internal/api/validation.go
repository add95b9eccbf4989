package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorDetail mirrors the {loc,msg,type} shape of a schema validation error.
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

var tagNamesOnce sync.Once

// registerTagNames makes validator report json field names instead of Go ones.
func registerTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func validationDetail(err error) []ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			d := ErrorDetail{Loc: []string{"body", fe.Field()}, Msg: fe.Error(), Type: fe.Tag()}
			if fe.Tag() == "required" {
				d.Msg = "Field required"
				d.Type = "missing"
			}
			out = append(out, d)
		}
		return out
	}
	var terr *json.UnmarshalTypeError
	if errors.As(err, &terr) {
		return []ErrorDetail{{
			Loc:  []string{"body", terr.Field},
			Msg:  "Input should be a valid number",
			Type: "float_type",
		}}
	}
	return []ErrorDetail{{Loc: []string{"body"}, Msg: "JSON decode error: " + err.Error(), Type: "json_invalid"}}
}
