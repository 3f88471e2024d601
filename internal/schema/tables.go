package schema

// Current table definitions, as they look after every migration has run.
// The migration runner builds the historical shapes itself (e.g. productos
// before the tipo→aroma rename); these specs are the destination.

var Productos = TableSpec{
	Name: "productos",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "nombre", Type: "TEXT", NotNull: true},
		{Name: "aroma", Type: "TEXT"},
		{Name: "presentacion", Type: "TEXT"},
		{Name: "precio_costo", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "precio_venta", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "stock_actual", Type: "INTEGER", NotNull: true, Default: "0"},
		{Name: "activo", Type: "BOOLEAN", NotNull: true, Default: "1"},
		{Name: "created_at", Type: "DATETIME", Default: "CURRENT_TIMESTAMP"},
		{Name: "updated_at", Type: "DATETIME", Default: "CURRENT_TIMESTAMP"},
	},
}

// ProductosLegacy is the pre-rename shape: "tipo" instead of "aroma".
// Kept so the rename migration can build a fresh legacy DB in tests and so
// the rebuild step knows the source column order.
var ProductosLegacy = TableSpec{
	Name: "productos",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "nombre", Type: "TEXT", NotNull: true},
		{Name: "tipo", Type: "TEXT"},
		{Name: "presentacion", Type: "TEXT"},
		{Name: "precio_costo", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "precio_venta", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "stock_actual", Type: "INTEGER", NotNull: true, Default: "0"},
		{Name: "activo", Type: "BOOLEAN", NotNull: true, Default: "1"},
		{Name: "created_at", Type: "DATETIME", Default: "CURRENT_TIMESTAMP"},
		{Name: "updated_at", Type: "DATETIME", Default: "CURRENT_TIMESTAMP"},
	},
}

var Clientes = TableSpec{
	Name: "clientes",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "nombre", Type: "TEXT", NotNull: true},
		{Name: "telefono", Type: "TEXT"},
		{Name: "direccion", Type: "TEXT"},
		{Name: "activo", Type: "BOOLEAN", NotNull: true, Default: "1"},
		{Name: "created_at", Type: "DATETIME", Default: "CURRENT_TIMESTAMP"},
		{Name: "updated_at", Type: "DATETIME", Default: "CURRENT_TIMESTAMP"},
	},
}

// VentasLegacy is the pre-fiado shape: no payment-tracking columns yet.
// The payment-tracking migration adds them and backfills.
var VentasLegacy = TableSpec{
	Name: "ventas",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "cliente_id", Type: "INTEGER", References: "clientes(id)"},
		{Name: "total", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "fecha", Type: "DATETIME", NotNull: true, Default: "CURRENT_TIMESTAMP"},
		{Name: "metodo_pago", Type: "TEXT"},
	},
}

var Ventas = TableSpec{
	Name: "ventas",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "cliente_id", Type: "INTEGER", References: "clientes(id)"},
		{Name: "total", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "fecha", Type: "DATETIME", NotNull: true, Default: "CURRENT_TIMESTAMP"},
		{Name: "metodo_pago", Type: "TEXT"},
		{Name: "estado_pago", Type: "TEXT", NotNull: true, Default: "'pagado'"},
		{Name: "monto_pagado", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
		{Name: "monto_pendiente", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"},
	},
	Checks: []string{"estado_pago IN ('pagado','pendiente','parcial')"},
}

var VentaItems = TableSpec{
	Name: "venta_items",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "venta_id", Type: "INTEGER", NotNull: true, References: "ventas(id)"},
		{Name: "producto_id", Type: "INTEGER", NotNull: true, References: "productos(id)"},
		{Name: "cantidad", Type: "INTEGER", NotNull: true},
		{Name: "precio_unitario", Type: "DECIMAL(12,2)", NotNull: true},
		{Name: "subtotal", Type: "DECIMAL(12,2)", NotNull: true},
	},
}

var Abonos = TableSpec{
	Name: "abonos",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "venta_id", Type: "INTEGER", NotNull: true, References: "ventas(id)"},
		{Name: "cliente_id", Type: "INTEGER", References: "clientes(id)"},
		{Name: "monto", Type: "DECIMAL(12,2)", NotNull: true},
		{Name: "fecha", Type: "DATETIME", NotNull: true, Default: "CURRENT_TIMESTAMP"},
		{Name: "metodo_pago", Type: "TEXT"},
		{Name: "notas", Type: "TEXT"},
	},
}

var StockMovimientos = TableSpec{
	Name: "stock_movimientos",
	Columns: []ColumnSpec{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "producto_id", Type: "INTEGER", NotNull: true, References: "productos(id)"},
		{Name: "tipo", Type: "TEXT", NotNull: true},
		{Name: "cantidad", Type: "INTEGER", NotNull: true},
		{Name: "stock_anterior", Type: "INTEGER", NotNull: true},
		{Name: "stock_nuevo", Type: "INTEGER", NotNull: true},
		{Name: "motivo", Type: "TEXT"},
		{Name: "referencia_tipo", Type: "TEXT"},
		{Name: "referencia_id", Type: "INTEGER"},
		{Name: "fecha", Type: "DATETIME", NotNull: true, Default: "CURRENT_TIMESTAMP"},
	},
	Checks: []string{"tipo IN ('INGRESO','SALIDA','AJUSTE')"},
}

// Tables indexes every current definition by name.
var Tables = map[string]TableSpec{
	Productos.Name:        Productos,
	Clientes.Name:         Clientes,
	Ventas.Name:           Ventas,
	VentaItems.Name:       VentaItems,
	Abonos.Name:           Abonos,
	StockMovimientos.Name: StockMovimientos,
}

// Current returns the authoritative definition for a table name.
func Current(name string) (TableSpec, bool) {
	t, ok := Tables[name]
	return t, ok
}
