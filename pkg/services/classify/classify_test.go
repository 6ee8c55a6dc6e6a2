package classify

import (
	"testing"

	"github.com/smaport/insight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		expected domain.RoleMapping
	}{
		{
			name:    "spanish headers",
			columns: []string{"Fecha", "Producto", "Ventas", "Coste", "Unidades"},
			expected: domain.RoleMapping{
				domain.RoleDate:    "Fecha",
				domain.RoleRevenue: "Ventas",
				domain.RoleCost:    "Coste",
				domain.RoleProduct: "Producto",
				domain.RoleUnits:   "Unidades",
			},
		},
		{
			name:    "english headers",
			columns: []string{"Date", "Product Name", "Total Revenue", "Cost of Goods", "Qty"},
			expected: domain.RoleMapping{
				domain.RoleDate:    "Date",
				domain.RoleRevenue: "Total Revenue",
				domain.RoleCost:    "Cost of Goods",
				domain.RoleProduct: "Product Name",
				domain.RoleUnits:   "Qty",
			},
		},
		{
			name:    "case insensitive substring",
			columns: []string{"FECHA VENTA", "IMPORTE TOTAL"},
			expected: domain.RoleMapping{
				domain.RoleDate:    "FECHA VENTA",
				domain.RoleRevenue: "IMPORTE TOTAL",
			},
		},
		{
			name:    "alias order wins over column order",
			columns: []string{"Importe", "Ventas"},
			// "ingresos" and "ventas" precede "importe" in the alias
			// list, so Ventas wins even though Importe comes first.
			expected: domain.RoleMapping{
				domain.RoleRevenue: "Ventas",
			},
		},
		{
			name:     "nothing recognized",
			columns:  []string{"Foo", "Bar"},
			expected: domain.RoleMapping{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Columns(tc.columns))
		})
	}
}

func TestColumns_AmbiguousName(t *testing.T) {
	// A column satisfying two alias sets is claimed by both roles; roles
	// match independently over the same column set.
	mapping := Columns([]string{"Item Revenue"})
	assert.Equal(t, "Item Revenue", mapping[domain.RoleRevenue])
	assert.Equal(t, "Item Revenue", mapping[domain.RoleProduct])
}

func TestColumns_FirstColumnWins(t *testing.T) {
	mapping := Columns([]string{"Ventas 2023", "Ventas 2024"})
	assert.Equal(t, "Ventas 2023", mapping[domain.RoleRevenue])
}
