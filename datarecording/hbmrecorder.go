package datarecording

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/fatih/structs"
	"github.com/rs/xid"

	"github.com/sarchlab/hbmsim/mem/hbm"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

// Tables written by a RunRecorder.
const (
	ConfigTable        = "hbm_config"
	StatTable          = "hbm_stats"
	AccessPatternTable = "hbm_access_pattern"
)

// ConfigEntry is one option of the configuration of a run.
type ConfigEntry struct {
	RunID string
	Name  string
	Value string
}

// StatEntry is one line of the report of a run.
type StatEntry struct {
	RunID     string
	Name      string
	Value     float64
	Precision int
	Desc      string
}

// AccessPatternEntry is one key of the access pattern table of a run. The
// channels are listed in access order, separated by spaces.
type AccessPatternEntry struct {
	RunID       string
	BankIndex   int
	ColumnIndex int
	RowIndex    int
	NumAccesses int
	Channels    string
}

// RunRecorder records the results of simulation runs. Each run gets a unique
// ID so that several runs can share one database.
type RunRecorder struct {
	recorder DataRecorder
	runID    string
}

// NewRunRecorder starts a run. The HBM tables are created in the recorder
// unless an earlier run already did.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	existing := recorder.ListTables()

	for name, sample := range map[string]any{
		ConfigTable:        ConfigEntry{},
		StatTable:          StatEntry{},
		AccessPatternTable: AccessPatternEntry{},
	} {
		if !slices.Contains(existing, name) {
			recorder.CreateTable(name, sample)
		}
	}

	return &RunRecorder{
		recorder: recorder,
		runID:    xid.New().String(),
	}
}

// RunID returns the ID of the run being recorded.
func (r *RunRecorder) RunID() string {
	return r.runID
}

// RecordConfig records every option of the configuration, sorted by name.
func (r *RunRecorder) RecordConfig(cfg hbm.Config) {
	options := structs.Map(cfg)

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		r.recorder.InsertData(ConfigTable, ConfigEntry{
			RunID: r.runID,
			Name:  k,
			Value: fmt.Sprint(options[k]),
		})
	}
}

// RecordReport records every statistic of a report.
func (r *RunRecorder) RecordReport(report stats.Report) {
	for _, s := range report {
		r.recorder.InsertData(StatTable, StatEntry{
			RunID:     r.runID,
			Name:      s.Name,
			Value:     s.Value,
			Precision: s.Precision,
			Desc:      s.Desc,
		})
	}
}

// RecordAccessPattern records flushed entries of the access pattern table.
func (r *RunRecorder) RecordAccessPattern(records []hbm.AccessRecord) {
	for _, rec := range records {
		channels := make([]string, len(rec.Channels))
		for i, ch := range rec.Channels {
			channels[i] = fmt.Sprint(ch)
		}

		r.recorder.InsertData(AccessPatternTable, AccessPatternEntry{
			RunID:       r.runID,
			BankIndex:   rec.BankProduct,
			ColumnIndex: rec.Column,
			RowIndex:    rec.Row,
			NumAccesses: len(rec.Channels),
			Channels:    strings.Join(channels, " "),
		})
	}
}

// Flush writes the buffered entries into the database.
func (r *RunRecorder) Flush() {
	r.recorder.Flush()
}

// ReadStats reads back the statistics recorded by RunRecorders, in the order
// they were recorded. An empty runID or name matches every run or every
// statistic.
func ReadStats(
	ctx context.Context,
	reader DataReader,
	runID, name string,
) ([]StatEntry, error) {
	reader.MapTable(StatTable, StatEntry{})

	var (
		conds []string
		args  []any
	)

	if runID != "" {
		conds = append(conds, "RunID = ?")
		args = append(args, runID)
	}

	if name != "" {
		conds = append(conds, "Name = ?")
		args = append(args, name)
	}

	results, _, err := reader.Query(ctx, StatTable, QueryParams{
		Where: strings.Join(conds, " AND "),
		Args:  args,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]StatEntry, len(results))
	for i, r := range results {
		entries[i] = *r.(*StatEntry)
	}

	return entries, nil
}
