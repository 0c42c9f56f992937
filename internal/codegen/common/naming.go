package common

import (
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// UpperFirst upper-cases the first character and leaves the rest alone,
// so "user_info" becomes "User_info" rather than "UserInfo".
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ToSnakeCase converts a table name such as "orderItem" to "order_item".
func ToSnakeCase(s string) string {
	return strcase.ToSnake(s)
}

// ToKebabCase converts a table name such as "orderItem" to "order-item".
func ToKebabCase(s string) string {
	return strcase.ToKebab(s)
}
