package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/phasediag/internal/phase"
)

var readingsHeader = []string{
	"x", "y",
	"lower_composition", "upper_composition",
	"lower_value", "upper_value",
	"vapour", "liquid",
}

type Store struct {
	baseDir string
	logger  *zap.Logger
}

func New(baseDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string      `json:"id"`
	Preset    string      `json:"preset"`
	Timestamp time.Time   `json:"timestamp"`
	Samples   int         `json:"samples"`
	Locator   string      `json:"locator"`
	Policy    string      `json:"policy"`
	Axis      phase.Axis  `json:"axis"`
	From      phase.Probe `json:"from"`
	To        phase.Probe `json:"to"`
	Steps     int         `json:"steps"`
	Summary   Summary     `json:"summary"`
}

// Summary counts the readings of a run by region.
type Summary struct {
	Vapour   int `json:"vapour"`
	Liquid   int `json:"liquid"`
	TwoPhase int `json:"two_phase"`
}

func Summarize(readings []phase.Reading) Summary {
	var sum Summary
	for _, r := range readings {
		switch phase.Classify(r.Fractions) {
		case phase.RegionVapour:
			sum.Vapour++
		case phase.RegionLiquid:
			sum.Liquid++
		case phase.RegionTwoPhase:
			sum.TwoPhase++
		}
	}
	return sum
}

// Save writes a sweep run and returns its id. Metadata fields other than
// ID, Timestamp, Steps and Summary are taken from meta.
func (s *Store) Save(meta RunMetadata, readings []phase.Reading) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Preset, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.Steps = len(readings)
	meta.Summary = Summarize(readings)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeReadings(filepath.Join(runDir, "readings.csv"), readings); err != nil {
		return "", err
	}

	s.logger.Info("run saved",
		zap.String("id", meta.ID),
		zap.Int("readings", len(readings)),
		zap.String("dir", runDir),
	)
	return meta.ID, nil
}

func writeReadings(path string, readings []phase.Reading) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(readingsHeader); err != nil {
		return err
	}
	for _, r := range readings {
		if err := w.Write(formatReading(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatReading(r phase.Reading) []string {
	vals := []float64{
		r.Probe.X, r.Probe.Y,
		r.Equilibrium.LowerComposition, r.Equilibrium.UpperComposition,
		r.Equilibrium.LowerValue, r.Equilibrium.UpperValue,
		r.Fractions.Vapour, r.Fractions.Liquid,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

// List returns all runs, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
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

// LoadReadings reads back the CSV of a run. Rows that do not parse are skipped.
func (s *Store) LoadReadings(runID string) ([]phase.Reading, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "readings.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []phase.Reading{}, nil
	}

	readings := make([]phase.Reading, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(readingsHeader) {
			continue
		}
		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		readings = append(readings, phase.Reading{
			Probe: phase.Probe{X: vals[0], Y: vals[1]},
			Equilibrium: phase.Equilibrium{
				LowerComposition: vals[2],
				UpperComposition: vals[3],
				LowerValue:       vals[4],
				UpperValue:       vals[5],
			},
			Fractions: phase.Fractions{Vapour: vals[6], Liquid: vals[7]},
		})
	}
	return readings, nil
}
