// Package classify maps human-authored column names to semantic roles via
// case-insensitive substring matching against per-role alias lists.
package classify

import (
	"strings"

	"github.com/smaport/insight/pkg/models/domain"
)

// roleAliases lists the recognized name fragments per role, most specific
// first. Business uploads mix Spanish and English headers, so both are
// covered.
var roleAliases = map[domain.Role][]string{
	domain.RoleDate:    {"fecha", "date", "día", "dia", "day"},
	domain.RoleRevenue: {"ingresos", "ventas", "facturado", "importe", "revenue", "sales", "billed", "amount"},
	domain.RoleCost:    {"coste", "costo", "gasto", "cost", "expense"},
	domain.RoleProduct: {"producto", "product", "item", "concepto", "descripción", "descripcion", "description"},
	domain.RoleUnits:   {"unidades", "cantidad", "qty", "quantity", "units"},
}

// Columns assigns each role to at most one column. Matching is greedy and
// order sensitive: for each role the alias list is walked in order and the
// first column containing the alias wins. Roles are resolved independently
// in precedence order (Date, Revenue, Cost, Product, Units), so a column
// with an ambiguous name like "Item Revenue" is claimed by the earlier
// role and may still satisfy a later role's alias set.
func Columns(names []string) domain.RoleMapping {
	mapping := domain.RoleMapping{}
	for _, role := range domain.RolePrecedence {
		if name, ok := match(roleAliases[role], names); ok {
			mapping[role] = name
		}
	}
	return mapping
}

func match(aliases []string, names []string) (string, bool) {
	for _, alias := range aliases {
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), alias) {
				return name, true
			}
		}
	}
	return "", false
}
