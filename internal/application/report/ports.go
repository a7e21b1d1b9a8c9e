package report

import "context"

// Formatter renderiza el payload del reporte (resumen + filas) a un archivo
// descargable. El motor de reportes solo produce el payload etiquetado; el
// render es responsabilidad de estos formateadores aguas abajo.
type Formatter interface {
	Format(ctx context.Context, res *Result) ([]byte, error)
	ContentType() string
	FileExt() string
}
