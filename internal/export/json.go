package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/phasediag/internal/phase"
	"github.com/san-kum/phasediag/internal/storage"
)

// RunData is the JSON document for a saved run.
type RunData struct {
	Run      storage.RunMetadata `json:"run"`
	Regions  []string            `json:"regions"`
	Readings []phase.Reading     `json:"readings"`
}

func newRunData(meta storage.RunMetadata, readings []phase.Reading) RunData {
	data := RunData{
		Run:      meta,
		Regions:  make([]string, len(readings)),
		Readings: readings,
	}
	for i, r := range readings {
		data.Regions[i] = phase.Classify(r.Fractions).String()
	}
	return data
}

// WriteJSON encodes a run and its readings as indented JSON.
func WriteJSON(w io.Writer, meta storage.RunMetadata, readings []phase.Reading) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newRunData(meta, readings))
}

func ExportJSON(path string, meta storage.RunMetadata, readings []phase.Reading) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, readings)
}
