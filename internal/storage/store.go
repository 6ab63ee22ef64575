package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dalitz/internal/experiment"
)

var ErrMalformed = errors.New("storage: malformed projection file")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Preset    string    `json:"preset,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Points    int       `json:"points"`
	Pars      []float64 `json:"pars"`
	Integral  float64   `json:"integral"`
	XMin      float64   `json:"xmin"`
	XMax      float64   `json:"xmax"`
	YMin      float64   `json:"ymin"`
	YMax      float64   `json:"ymax"`
}

// Save writes the metadata and both projections of a run under a new run
// directory and returns the run id.
func (s *Store) Save(meta RunMetadata, res *experiment.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Kind, now.UnixNano())
	meta.Timestamp = now
	meta.Integral = res.Integral
	meta.Points = len(res.X)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, "projections.csv"), func(w io.Writer) error {
		return WriteCSV(w, res)
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadProjection reads the projections of a stored run back. The integral
// comes from the run metadata.
func (s *Store) LoadProjection(runID string) (*experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "projections.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	res := &experiment.Result{Integral: meta.Integral}
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("%w: line %d: %d columns, want 4", ErrMalformed, i+1, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, i+1, err)
			}
		}
		res.X = append(res.X, vals[0])
		res.ProjX = append(res.ProjX, vals[1])
		res.Y = append(res.Y, vals[2])
		res.ProjY = append(res.ProjY, vals[3])
	}
	return res, nil
}
