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

	"github.com/san-kum/vibfd/internal/config"
	"github.com/san-kum/vibfd/internal/experiment"
	"github.com/san-kum/vibfd/internal/vib"
)

const (
	KindSolution = "solution"
	KindRates    = "rates"

	metadataFile = "metadata.json"
	solutionFile = "solution.csv"
	ratesFile    = "rates.csv"
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
	ID            string        `json:"id"`
	Kind          string        `json:"kind"`
	Scheme        string        `json:"scheme"`
	Timestamp     time.Time     `json:"timestamp"`
	Config        config.Config `json:"config"`
	DeclaredOrder int           `json:"declared_order"`
	L2Error       float64       `json:"l2_error,omitempty"`
	Orders        []float64     `json:"orders,omitempty"`
}

func (s *Store) newRun(kind, scheme string) (string, string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", scheme, kind, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", "", err
	}
	return runID, runDir, nil
}

func writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// writeRun fills runDir with the metadata and one table. A run that cannot
// be written completely is removed.
func writeRun(runDir string, meta RunMetadata, table string, header []string, rows [][]float64) error {
	err := writeMetadata(runDir, meta)
	if err == nil {
		err = writeCSV(filepath.Join(runDir, table), header, rows)
	}
	if err != nil {
		os.RemoveAll(runDir)
		return fmt.Errorf("storage: write run %s: %w", meta.ID, err)
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SaveSolution stores one evaluation of a scheme as metadata plus a
// time/u/exact table.
func (s *Store) SaveSolution(cfg config.Config, order int, sol *experiment.Solution) (string, error) {
	if len(sol.U) != len(sol.Times) || len(sol.Exact) != len(sol.Times) {
		return "", fmt.Errorf("storage: solution columns differ in length: %w", vib.ErrDimensionMismatch)
	}
	runID, runDir, err := s.newRun(KindSolution, sol.Scheme)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Kind:          KindSolution,
		Scheme:        sol.Scheme,
		Timestamp:     time.Now(),
		Config:        cfg,
		DeclaredOrder: order,
		L2Error:       sol.L2Error,
	}
	rows := make([][]float64, len(sol.Times))
	for i := range rows {
		rows[i] = []float64{sol.Times[i], sol.U[i], sol.Exact[i]}
	}
	if err := writeRun(runDir, meta, solutionFile, []string{"t", "u", "exact"}, rows); err != nil {
		return "", err
	}
	return runID, nil
}

// SaveRates stores a convergence report as metadata plus a
// steps/dt/error table.
func (s *Store) SaveRates(cfg config.Config, report *vib.Report) (string, error) {
	if len(report.StepCounts) != len(report.Errors) || len(report.StepSizes) != len(report.Errors) {
		return "", fmt.Errorf("storage: report columns differ in length: %w", vib.ErrDimensionMismatch)
	}
	runID, runDir, err := s.newRun(KindRates, report.Scheme)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Kind:          KindRates,
		Scheme:        report.Scheme,
		Timestamp:     time.Now(),
		Config:        cfg,
		DeclaredOrder: report.DeclaredOrder,
		Orders:        report.Orders,
	}
	rows := make([][]float64, len(report.Errors))
	for i := range rows {
		rows[i] = []float64{float64(report.StepCounts[i]), report.StepSizes[i], report.Errors[i]}
	}
	if err := writeRun(runDir, meta, ratesFile, []string{"nt", "dt", "error"}, rows); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns the metadata of every stored run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func readCSV(path string, columns int) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = columns

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("storage: %s has no header", path)
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, columns)
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", path, i+2, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadSolution reads back a stored solution.
func (s *Store) LoadSolution(runID string) (*experiment.Solution, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if meta.Kind != KindSolution {
		return nil, fmt.Errorf("storage: run %s is a %s run", runID, meta.Kind)
	}

	rows, err := readCSV(filepath.Join(s.baseDir, runID, solutionFile), 3)
	if err != nil {
		return nil, err
	}

	sol := &experiment.Solution{
		Scheme:  meta.Scheme,
		Times:   make([]float64, len(rows)),
		U:       make([]float64, len(rows)),
		Exact:   make([]float64, len(rows)),
		L2Error: meta.L2Error,
	}
	for i, row := range rows {
		sol.Times[i], sol.U[i], sol.Exact[i] = row[0], row[1], row[2]
	}
	return sol, nil
}

// LoadRates reads back a stored convergence report.
func (s *Store) LoadRates(runID string) (*vib.Report, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if meta.Kind != KindRates {
		return nil, fmt.Errorf("storage: run %s is a %s run", runID, meta.Kind)
	}

	rows, err := readCSV(filepath.Join(s.baseDir, runID, ratesFile), 3)
	if err != nil {
		return nil, err
	}

	report := &vib.Report{
		Scheme:        meta.Scheme,
		DeclaredOrder: meta.DeclaredOrder,
		StepCounts:    make([]int, len(rows)),
		StepSizes:     make([]float64, len(rows)),
		Errors:        make([]float64, len(rows)),
	}
	for i, row := range rows {
		report.StepCounts[i] = int(row[0])
		report.StepSizes[i] = row[1]
		report.Errors[i] = row[2]
	}

	orders, err := vib.EstimateOrders(report.StepSizes, report.Errors)
	if err != nil {
		return nil, err
	}
	report.Orders = orders
	return report, nil
}
