package formulaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamingStrategyColumnName(t *testing.T) {
	ns := NamingStrategy{}

	assert.Equal(t, "FirstName", ns.ColumnName("first_name"))
	assert.Equal(t, "Name", ns.ColumnName("name"))
	assert.Equal(t, "Id", ns.ColumnName("id"))
	assert.Equal(t, "BillingAddressLine", ns.ColumnName("billing_address_line"))
}

func TestNamingStrategyTableName(t *testing.T) {
	assert.Equal(t, "person", NamingStrategy{}.TableName("person"))
	assert.Equal(t, "people", NamingStrategy{PluralizeTable: true}.TableName("person"))
	assert.Equal(t, "users", NamingStrategy{PluralizeTable: true}.TableName("user"))
	assert.Equal(t, "app_person", NamingStrategy{TablePrefix: "app_"}.TableName("person"))
}
