// Package storage keeps recorded runs on disk: one directory per run holding
// metadata.json and a traces.csv with one row per frame.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	tracesFile   = "traces.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	log     *zap.Logger
}

func New(baseDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// ParamsRecord is the serialized form of circuit.Params.
type ParamsRecord struct {
	Capacitance float64 `json:"capacitance"`
	Inductance  float64 `json:"inductance"`
	PeakVoltage float64 `json:"peak_voltage"`
	ChargeCount int     `json:"charge_count"`
	ChargeValue float64 `json:"charge_value"`
	LoopX       float64 `json:"loop_x"`
	LoopY       float64 `json:"loop_y"`
	LoopWidth   float64 `json:"loop_width"`
	LoopHeight  float64 `json:"loop_height"`
}

func RecordParams(p circuit.Params) ParamsRecord {
	return ParamsRecord{
		Capacitance: p.Capacitance,
		Inductance:  p.Inductance,
		PeakVoltage: p.PeakVoltage,
		ChargeCount: p.ChargeCount,
		ChargeValue: p.ChargeValue,
		LoopX:       p.LoopOrigin.X,
		LoopY:       p.LoopOrigin.Y,
		LoopWidth:   p.LoopSize.X,
		LoopHeight:  p.LoopSize.Y,
	}
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Params      ParamsRecord       `json:"params"`
	Fingerprint string             `json:"fingerprint"`
	Omega       float64            `json:"omega"`
	Period      float64            `json:"period"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewMetadata describes a run of c under cfg. ID and Timestamp are filled
// in by Save.
func NewMetadata(c *circuit.Circuit, cfg dynamo.Config, preset string) RunMetadata {
	return RunMetadata{
		Preset:      preset,
		Params:      RecordParams(c.Params()),
		Fingerprint: Fingerprint(c.Params()),
		Omega:       c.AngularFrequency(),
		Period:      c.Period(),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
	}
}

func newRunID(now time.Time) string {
	return fmt.Sprintf("%s_%s", now.UTC().Format("20060102T150405"), uuid.NewString()[:8])
}

// Save writes meta and the traces of result into a fresh run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	meta.ID = newRunID(now)
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, tracesFile), func(w io.Writer) error {
			return WriteCSV(w, result)
		})
	}
	if err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.log.Warn("cannot remove partial run", zap.String("id", meta.ID), zap.Error(rmErr))
		}
		return "", fmt.Errorf("storage: save %s: %w", meta.ID, err)
	}

	s.log.Info("run saved",
		zap.String("id", meta.ID),
		zap.String("fingerprint", meta.Fingerprint),
		zap.Int("frames", result.Len()),
	)
	return meta.ID, nil
}

// writeFile creates path, fills it with write and reports the first error,
// including the one from Close.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
			s.log.Debug("skipping run directory", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// FindByParams returns the stored runs whose circuit parameters match p.
func (s *Store) FindByParams(p circuit.Params) ([]RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}

	fp := Fingerprint(p)
	out := make([]RunMetadata, 0)
	for _, r := range runs {
		if r.Fingerprint == fp {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadResult reads the traces of a run back into a Result.
func (s *Store) LoadResult(runID string) (*dynamo.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, tracesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	s.log.Info("run deleted", zap.String("id", runID))
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
