package sqlite

// SQL for SQLite metadata introspection. Column metadata comes from
// PRAGMA table_info, built per table in driver.go.
const queryListTables = `
	SELECT name
	FROM sqlite_master
	WHERE type = 'table'
	  AND name NOT LIKE 'sqlite_%'
	ORDER BY name`
