package data

import (
	_ "embed"
)

//go:embed seed/cats_catalog.json
var SeedCatalogJSON []byte

//go:embed initdb/mariadb/001-ddl-privileges.sql
var InitdbMariaDBPrivileges string
