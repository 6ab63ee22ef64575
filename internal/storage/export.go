package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/dalitz/internal/experiment"
)

type ExportData struct {
	Kind     string    `json:"kind"`
	Pars     []float64 `json:"pars"`
	Integral float64   `json:"integral"`
	X        []float64 `json:"x"`
	ProjX    []float64 `json:"proj_x"`
	Y        []float64 `json:"y"`
	ProjY    []float64 `json:"proj_y"`
}

func ExportJSON(w io.Writer, kind string, pars []float64, res *experiment.Result) error {
	data := ExportData{
		Kind:     kind,
		Pars:     pars,
		Integral: res.Integral,
		X:        res.X,
		ProjX:    res.ProjX,
		Y:        res.Y,
		ProjY:    res.ProjY,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per sample: x, the x projection, y and the y
// projection. Values are written with full precision.
func WriteCSV(w io.Writer, res *experiment.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "proj_x", "y", "proj_y"}); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range res.X {
		row := []string{format(res.X[i]), format(res.ProjX[i]), format(res.Y[i]), format(res.ProjY[i])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
