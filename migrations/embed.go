// Package migrations embebe los archivos SQL de goose para aplicarlos
// desde el binario, sin depender del filesystem del despliegue.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
