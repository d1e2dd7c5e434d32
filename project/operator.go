package project

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	ge "github.com/kokes/great-expectations"
	"github.com/kokes/great-expectations/checkpoint"
	"github.com/kokes/great-expectations/store"
	"github.com/kokes/great-expectations/suite"
	"github.com/kokes/great-expectations/termstat"
)

// Asset is one batch paired with one suite to validate it against.
type Asset struct {
	Batch *ge.Batch
	Suite *suite.Suite
}

// AssetResult is the outcome of validating one asset.
type AssetResult struct {
	BatchKwargs ge.BatchKwargs    `json:"batch_kwargs"`
	SuiteResult suite.SuiteResult `json:"validation_result"`
}

// OperatorResult is the outcome of one validation operator run.
type OperatorResult struct {
	RunID   string        `json:"run_id"`
	Success bool          `json:"success"`
	Results []AssetResult `json:"results"`
}

// RunValidationOperator validates every asset, persists each suite result to
// the validation store, and writes run counters to out.
func (c *Context) RunValidationOperator(name string, assets []Asset, out io.Writer) (OperatorResult, error) {
	if name == "" {
		name = checkpoint.DefaultOperator
	}
	if name != checkpoint.DefaultOperator {
		return OperatorResult{}, errors.Errorf("unknown validation operator '%s'", name)
	}
	if len(assets) == 0 {
		return OperatorResult{}, errors.New("no batches to validate")
	}

	st, err := c.OpenValidationStore()
	if err != nil {
		return OperatorResult{}, err
	}
	defer st.Close()

	stats := termstat.NewCollector(out)
	runID := time.Now().UTC().Format(ge.LoadTimeLayout)
	result := OperatorResult{RunID: runID, Success: true}
	for _, asset := range assets {
		res := suite.Evaluate(asset.Suite, asset.Batch.Data)
		stats.Count(termstat.StatSuitesRun, 1)
		stats.Count(termstat.StatRowsValidated, int64(asset.Batch.Data.NumRows()))
		stats.Count(termstat.StatExpectationsEvaluated, int64(res.Statistics.EvaluatedExpectations))
		stats.Count(termstat.StatExpectationsFailed, int64(res.Statistics.UnsuccessfulExpectations))

		details, err := json.Marshal(res)
		if err != nil {
			return OperatorResult{}, errors.Wrap(err, "encoding suite result")
		}
		rec := store.Record{
			RunID:   runID,
			Suite:   res.SuiteName,
			RunTime: runID,
			Success: res.Success,
			Details: details,
		}
		if err := st.Put(rec); err != nil {
			return OperatorResult{}, err
		}

		if !res.Success {
			result.Success = false
		}
		result.Results = append(result.Results, AssetResult{
			BatchKwargs: asset.Batch.Kwargs,
			SuiteResult: res,
		})
	}
	stats.Flush()
	return result, nil
}

// RunCheckpoint loads the named checkpoint, fetches its batches, and runs
// its validation operator over every batch/suite pair.
func (c *Context) RunCheckpoint(name string, out io.Writer) (OperatorResult, error) {
	cp, err := c.GetCheckpoint(name)
	if err != nil {
		return OperatorResult{}, err
	}
	ds, err := c.Datasource()
	if err != nil {
		return OperatorResult{}, err
	}

	var assets []Asset
	for _, b := range cp.Batches {
		batch, err := ds.GetBatch(b.BatchKwargs)
		if err != nil {
			return OperatorResult{}, errors.Wrapf(err,
				"getting batch %v, please verify these batch kwargs in the checkpoint file '%s'",
				b.BatchKwargs, c.CheckpointPath(name))
		}
		for _, suiteName := range b.ExpectationSuiteNames {
			s, err := c.GetSuite(suiteName)
			if err != nil {
				return OperatorResult{}, err
			}
			assets = append(assets, Asset{Batch: batch, Suite: s})
		}
	}
	return c.RunValidationOperator(cp.ValidationOperatorName, assets, out)
}
