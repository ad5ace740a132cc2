package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/benchgraph/pkg/series"
)

// JSONRenderer writes the chart model as JSON for external chart surfaces.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Name returns the format name.
func (r *JSONRenderer) Name() string {
	return "json"
}

// Render encodes the model.
func (r *JSONRenderer) Render(ctx context.Context, model *series.ChartModel, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(model)
}
