// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var signalType = reflect.TypeOf((*Signal)(nil))

// Declare creates signals for the tagged fields of the struct pointed to by v.
//
// The field tag must be `rtl:""` or `rtl:"name,width"`. By default, the signal
// name is the field name in lowercase and its width is 1. Fields must be of
// type *Signal or arrays of *Signal. Array elements are named name[i]. Fields
// that are already set are left untouched.
//
func Declare(d *Design, v interface{}) error {
	pv := reflect.ValueOf(v)
	if pv.Kind() != reflect.Ptr || pv.Elem().Kind() != reflect.Struct {
		return errors.Errorf("unsupported type %T", v)
	}
	e := pv.Elem()
	typ := e.Type()

	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("rtl")
		if !ok {
			continue
		}
		name := strings.ToLower(f.Name)
		width := 1
		tv := strings.Split(tag, ",")
		if tv[0] != "" {
			name = tv[0]
		}
		if len(tv) > 1 && tv[1] != "" {
			w, err := strconv.Atoi(tv[1])
			if err != nil || w < 1 {
				return errors.Errorf("invalid width %q for field %q in %q", tv[1], f.Name, typ.Name())
			}
			width = w
		}

		fv := e.Field(i)
		if !fv.CanSet() {
			return errors.Errorf("unexported field %q in %q", f.Name, typ.Name())
		}
		ft := f.Type
		switch {
		case ft == signalType:
			if fv.IsNil() {
				fv.Set(reflect.ValueOf(d.Signal(name, width)))
			}
		case ft.Kind() == reflect.Array && ft.Elem() == signalType:
			for j := 0; j < fv.Len(); j++ {
				if fv.Index(j).IsNil() {
					fv.Index(j).Set(reflect.ValueOf(d.Signal(name+"["+strconv.Itoa(j)+"]", width)))
				}
			}
		default:
			return errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name())
		}
	}
	return nil
}
