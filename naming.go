package formulaic

import (
	"strings"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer derives SQL identifiers from schema and field names. Derived names
// are emitted unquoted; callers must keep schema and field names SQL-safe.
type Namer interface {
	TableName(name string) string
	ColumnName(name string) string
}

// NamingStrategy is the default Namer. Columns title-case each underscore
// separated part of the field name (first_name => FirstName); tables carry
// an optional prefix and optional pluralization.
type NamingStrategy struct {
	TablePrefix    string
	PluralizeTable bool
}

// TableName converts a name to a table name.
func (ns NamingStrategy) TableName(name string) string {
	if ns.PluralizeTable {
		return ns.TablePrefix + inflection.Plural(name)
	}
	return ns.TablePrefix + name
}

// ColumnName converts a field name to a column name.
func (ns NamingStrategy) ColumnName(name string) string {
	caser := cases.Title(language.English)
	parts := strings.Split(name, "_")
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	return strings.Join(parts, "")
}
