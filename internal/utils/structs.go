package utils

import (
	"fmt"
	"reflect"
)

var ColumnTag = "db"

// StructTagValues returns the db tag of every exported field, in
// declaration order. Embedded structs are flattened one level so that
// join types composed of a row plus extra columns map cleanly.
func StructTagValues(input any) []string {

	targetValue := reflect.ValueOf(input)
	if targetValue.Kind() == reflect.Ptr {
		targetValue = targetValue.Elem()
	}

	if targetValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return structTagValues(targetValue.Type())

}

func structTagValues(targetType reflect.Type) []string {

	result := make([]string, 0, targetType.NumField())

	for i := 0; i < targetType.NumField(); i++ {

		field := targetType.Field(i)

		// Embedded structs come before the export check so that rows
		// embedded under an unexported type name still flatten.
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			result = append(result, structTagValues(field.Type)...)
			continue
		}

		if field.PkgPath != "" {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, tagValue)

	}

	return result

}

// StructToMap maps db tag -> field value for use with squirrel SetMap.
func StructToMap(input any) map[string]any {

	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Ptr {
		itemValue = itemValue.Elem()
	}

	if itemValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	result := make(map[string]any)
	structToMap(itemValue, result)

	return result

}

func structToMap(itemValue reflect.Value, result map[string]any) {

	itemType := itemValue.Type()

	for i := 0; i < itemValue.NumField(); i++ {

		field := itemType.Field(i)

		// Reading exported fields through an unexported embedded
		// struct is fine; calling Interface on the embedded value
		// itself is not, so recursion stays on reflect.Value.
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			structToMap(itemValue.Field(i), result)
			continue
		}

		if field.PkgPath != "" {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result[tagValue] = itemValue.Field(i).Interface()

	}

}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)

}
