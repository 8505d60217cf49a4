package export

import (
	"context"
	"fmt"
)

// Export renders doc in the requested format.
func Export(ctx context.Context, doc Document, format Format) (*Result, error) {
	page, err := RenderDocumentHTML(NewTemplateData(doc))
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatHTML:
		return &Result{
			Data:     []byte(page),
			Filename: sanitizeFilename(doc.Title) + ".html",
			MimeType: "text/html; charset=utf-8",
		}, nil
	case FormatPDF:
		return PDF(ctx, page, doc.Title)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
