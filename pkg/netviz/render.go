package netviz

import (
	"bytes"
	"context"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/busse/molt-in-the-mist/pkg/errors"
)

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render graph")
	}
	return buf.Bytes(), nil
}

// WriteFile renders the DOT graph into path, picking the format from the
// file extension (.svg or .png).
func WriteFile(ctx context.Context, dot, path string) error {
	var data []byte
	var err error

	switch {
	case len(path) > 4 && path[len(path)-4:] == ".png":
		data, err = RenderPNG(ctx, dot)
	default:
		data, err = RenderSVG(ctx, dot)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
