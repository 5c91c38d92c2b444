package csv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ObjectToCsv renders one struct (or pointer to struct) as a header line and a
// value line. Column names come from the `csv` tag, falling back to the field
// name; nested structs are flattened as "Parent.Child".
func ObjectToCsv(objectArgs interface{}) (string, string, error) {
	objectRef, err := structValue(reflect.ValueOf(objectArgs))
	if err != nil {
		return "", "", err
	}

	names, values := flatten(objectRef, "")
	return strings.Join(names, ","), strings.Join(values, ","), nil
}

// ObjectListToCsv renders a slice of structs as a header line followed by one
// line per element.
func ObjectListToCsv(object interface{}) (string, error) {
	sliceValue := reflect.ValueOf(object)
	if sliceValue.Kind() != reflect.Slice && sliceValue.Kind() != reflect.Array {
		return "", errors.Errorf("ObjectListToCsv: want slice, got %s", sliceValue.Kind())
	}

	elemType := sliceValue.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return "", errors.Errorf("ObjectListToCsv: want struct elements, got %s", elemType.Kind())
	}

	names, _ := flatten(reflect.New(elemType).Elem(), "")

	var sb strings.Builder
	sb.WriteString(strings.Join(names, ","))
	sb.WriteString("\n")
	for i := 0; i < sliceValue.Len(); i++ {
		item, err := structValue(sliceValue.Index(i))
		if err != nil {
			return "", err
		}
		_, values := flatten(item, "")
		sb.WriteString(strings.Join(values, ","))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func structValue(v reflect.Value) (reflect.Value, error) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, errors.New("nil object")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.Errorf("want struct, got %s", v.Kind())
	}
	return v, nil
}

func flatten(object reflect.Value, prefix string) ([]string, []string) {
	var (
		names  []string
		values []string
	)

	objectType := object.Type()
	for i := 0; i < object.NumField(); i++ {
		field := objectType.Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := columnName(field)
		if name == "-" {
			continue
		}

		fieldValue := object.Field(i)
		if fieldValue.Kind() == reflect.Struct {
			subPrefix := prefix + name + "."
			if field.Anonymous {
				subPrefix = prefix
			}
			subNames, subValues := flatten(fieldValue, subPrefix)
			names = append(names, subNames...)
			values = append(values, subValues...)
			continue
		}

		names = append(names, prefix+name)
		values = append(values, formatValue(fieldValue))
	}
	return names, values
}

func columnName(field reflect.StructField) string {
	tag := field.Tag.Get("csv")
	if tag == "" {
		return field.Name
	}
	return strings.Split(tag, ",")[0]
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	case reflect.Ptr:
		if v.IsNil() {
			return ""
		}
		return formatValue(v.Elem())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
