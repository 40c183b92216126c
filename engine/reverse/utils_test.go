package reverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableToEntity(t *testing.T) {
	tests := map[string]string{
		"users":       "User",
		"order_items": "OrderItem",
		"people":      "Person",
		"categories":  "Category",
		"user_ids":    "UserID",
	}
	for in, want := range tests {
		assert.Equal(t, want, TableToEntity(in), in)
	}
}

func TestFieldToProperty(t *testing.T) {
	assert.Equal(t, "CreatedAt", FieldToProperty("created_at"))
	assert.Equal(t, "ID", FieldToProperty("id"))
	assert.Equal(t, "AvatarURL", FieldToProperty("avatar_url"))
}
