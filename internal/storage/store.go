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

	"github.com/san-kum/quansim/internal/epr"
)

const (
	metadataFile = "metadata.json"
	chiFile      = "chi.csv"
)

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
	ID             string    `json:"id"`
	Circuit        string    `json:"circuit"`
	Timestamp      time.Time `json:"timestamp"`
	FockTruncation int       `json:"fock_truncation"`
	CosineTrunc    int       `json:"cosine_truncation"`
	Labels         []string  `json:"labels"`
	FrequenciesGHz []float64 `json:"frequencies_ghz"`
	// ChiMHz duplicates chi.csv so that List needs only one file per run.
	ChiMHz  [][]float64        `json:"chi_mhz"`
	Summary map[string]float64 `json:"summary"`
}

// Save writes one run directory holding metadata.json and chi.csv and returns
// the run id.
func (s *Store) Save(circuit string, labels []string, opts epr.Options, result *epr.Result) (string, error) {
	if len(labels) != result.Modes() {
		return "", fmt.Errorf("%d labels for %d modes", len(labels), result.Modes())
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", circuit, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	summary, err := result.Flatten(labels)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Circuit:        circuit,
		Timestamp:      now,
		FockTruncation: opts.FockTruncation,
		CosineTrunc:    opts.CosineTruncation,
		Labels:         labels,
		FrequenciesGHz: result.FrequenciesGHz,
		ChiMHz:         result.ChiMHz,
		Summary:        summary,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeChi(filepath.Join(runDir, chiFile), labels, result.ChiMHz); err != nil {
		return "", err
	}
	return runID, nil
}

func writeChi(path string, labels []string, chi [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"mode"}, labels...)); err != nil {
		return err
	}
	for i, row := range chi {
		record := []string{labels[i]}
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadChi reads the labelled chi matrix of a run back from chi.csv.
func (s *Store) LoadChi(runID string) ([]string, [][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, chiFile))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return []string{}, [][]float64{}, nil
	}

	labels := records[0][1:]
	chi := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("chi.csv row %d: %w", i+1, err)
			}
			row = append(row, v)
		}
		chi = append(chi, row)
	}
	return labels, chi, nil
}
