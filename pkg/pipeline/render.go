package pipeline

import (
	"fmt"

	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(res layout.Result, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	ropts := []render.Option{
		render.WithDisplay(opts.Display()),
		render.WithCatalog(opts.Catalog),
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(res, ropts...)
		case FormatPNG:
			data, err = render.RenderPNG(res, ropts...)
		case FormatPDF:
			data, err = render.RenderPDF(res, ropts...)
		case FormatJSON:
			data, err = render.RenderJSON(res, ropts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
