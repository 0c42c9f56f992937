package java

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jxy/goos/internal/codegen/scanner"
)

var (
	ErrUnknownDataType = errors.New("unknown dataType")
	ErrNoRange         = errors.New("no range query over dataType")
)

// javaTypes maps schema data types to boxed Java types.
var javaTypes = map[string]string{
	"int":      "Long",
	"float":    "Double",
	"varchar":  "String",
	"datetime": "Date",
}

// rangeTypes are the data types a "between" query can span.
var rangeTypes = map[string]bool{
	"int":      true,
	"float":    true,
	"datetime": true,
}

func javaType(dataType string) (string, error) {
	t, ok := javaTypes[dataType]
	if !ok {
		return "", fmt.Errorf("%w %s", ErrUnknownDataType, dataType)
	}
	return t, nil
}

// SingleField declares one scalar member.
func SingleField(dataType, key string) (string, error) {
	t, err := javaType(dataType)
	if err != nil {
		return "", err
	}
	return "private " + t + " " + key + ";\n", nil
}

// ListField declares one List member.
func ListField(dataType, key string) (string, error) {
	t, err := javaType(dataType)
	if err != nil {
		return "", err
	}
	return "private List<" + t + "> " + key + ";\n", nil
}

// BetweenField declares the <key>Begin/<key>End pair of a range query.
func BetweenField(dataType, key string) (string, error) {
	t, err := javaType(dataType)
	if err != nil {
		return "", err
	}
	if !rangeTypes[dataType] {
		return "", fmt.Errorf("%w %s", ErrNoRange, dataType)
	}
	var sb strings.Builder
	sb.WriteString("private " + t + " " + key + "Begin;\n")
	sb.WriteString("private " + t + " " + key + "End;\n")
	return sb.String(), nil
}

func isMultiSelect(showType string) bool {
	return showType == "checkbox" || showType == "multiSelect" || showType == "multiselect"
}

// QueryField renders the query VO members of one field.
func QueryField(f scanner.Field) (string, error) {
	switch {
	case f.ShowType == "between":
		return BetweenField(f.DataType, f.Key)
	case isMultiSelect(f.ShowType):
		return ListField(f.DataType, f.Key)
	default:
		return SingleField(f.DataType, f.Key)
	}
}

// DataField renders the VO member of one field. Callers skip
// scanner.ActionKey before getting here.
func DataField(f scanner.Field) (string, error) {
	switch {
	case f.ShowType == "file" || f.ShowType == "image":
		if f.SingleUpload() {
			return SingleField(f.DataType, f.Key)
		}
		return ListField(f.DataType, f.Key)
	case isMultiSelect(f.ShowType) || f.ShowType == "imageArray":
		return ListField(f.DataType, f.Key)
	default:
		return SingleField(f.DataType, f.Key)
	}
}
