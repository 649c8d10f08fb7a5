package catalog

// Option configures a Catalog.
type Option func(*Catalog)

// WithTables replaces the league to ranking-table mapping.
func WithTables(tables map[string]string) Option {
	return func(c *Catalog) {
		if len(tables) > 0 {
			c.tables = make(map[string]string, len(tables))
			for k, v := range tables {
				c.tables[k] = v
			}
		}
	}
}
