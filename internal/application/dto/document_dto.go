package dto

import "io"

// MaxDocumentBytes tamaño máximo de un adjunto (50 MB).
const MaxDocumentBytes = 50 << 20

// DocumentEntityTypes entidades a las que se puede adjuntar un documento.
var DocumentEntityTypes = []string{"equipo", "planta"}

// UploadDocumentRequest archivo a subir a POST /documentos/upload (multipart).
type UploadDocumentRequest struct {
	EntityType string
	EntityID   int64
	FileName   string
	Content    io.Reader
}

// DownloadedDocument binario descargado con los metadatos necesarios para reenviarlo.
type DownloadedDocument struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Export CSV devuelto por /exports/*.csv.
type Export struct {
	FileName string
	Body     []byte
}
