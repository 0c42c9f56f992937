package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpperFirst(t *testing.T) {
	tests := map[string]string{
		"user":      "User",
		"orderItem": "OrderItem",
		"user_info": "User_info",
		"User":      "User",
		"é":         "É",
		"":          "",
		"1abc":      "1abc",
	}
	for in, want := range tests {
		assert.Equal(t, want, UpperFirst(in), "UpperFirst(%q)", in)
	}
}

func TestCaseConversions(t *testing.T) {
	assert.Equal(t, "order_item", ToSnakeCase("orderItem"))
	assert.Equal(t, "user", ToSnakeCase("user"))
	assert.Equal(t, "order-item", ToKebabCase("orderItem"))
}
