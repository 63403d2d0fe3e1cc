package x3ftiff

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Outcome classifies a finished batch run.
type Outcome int

const (
	OutcomeAllSucceeded Outcome = iota
	OutcomePartial
	OutcomeAllFailed
)

// Summary aggregates one batch run.
type Summary struct {
	RunID     string // uuid identifying this run in logs
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Canceled  bool
	Results   []Result
	Elapsed   time.Duration
}

// Outcome classifies the run. A batch with no failures counts as
// all-succeeded, including one where every file was skipped.
func (s *Summary) Outcome() Outcome {
	switch {
	case s.Failed == 0:
		return OutcomeAllSucceeded
	case s.Succeeded == 0:
		return OutcomeAllFailed
	default:
		return OutcomePartial
	}
}

// CloseMessage renders the closing line for a finished run, one distinct
// message per outcome class.
func (s *Summary) CloseMessage() string {
	switch s.Outcome() {
	case OutcomeAllFailed:
		return fmt.Sprintf("All %d conversions failed", s.Failed)
	case OutcomePartial:
		return fmt.Sprintf("Conversion complete with errors: %d/%d files converted", s.Succeeded, s.Total)
	default:
		if s.Skipped > 0 {
			return fmt.Sprintf("All %d files converted successfully (%d skipped)", s.Total, s.Skipped)
		}
		return fmt.Sprintf("All %d files converted successfully", s.Total)
	}
}

// ConvertBatch converts inputs strictly in submission order, one at a time.
// A file's failure is recorded in its Result and the batch continues.
// Cancellation is cooperative: the context is checked between files, never
// mid-decode, and a canceled run returns the results gathered so far along
// with the context's error.
func ConvertBatch(ctx context.Context, inputs []string, optFns ...func(*Options)) (*Summary, error) {
	opt := applyOptions(optFns)
	sum := &Summary{RunID: uuid.New().String(), Total: len(inputs)}
	start := time.Now()
	log.Debugf("batch %s: %d file(s)", sum.RunID, len(inputs))

	for i, path := range inputs {
		if err := ctx.Err(); err != nil {
			sum.Canceled = true
			sum.Elapsed = time.Since(start)
			log.Warnf("batch %s canceled after %d of %d", sum.RunID, i, len(inputs))
			return sum, err
		}
		log.Infof("[%d/%d] Processing: %s", i+1, len(inputs), filepath.Base(path))
		res, _ := convertOne(path, &opt)
		switch {
		case res.Skipped:
			sum.Skipped++
		case res.Success():
			sum.Succeeded++
			log.Infof("✓ Successfully converted %s", filepath.Base(path))
		default:
			sum.Failed++
			log.Errorf("✗ Conversion failed for %s: %v", filepath.Base(path), res.Err)
		}
		sum.Results = append(sum.Results, *res)
		if opt.OnResult != nil {
			opt.OnResult(res)
		}
	}
	sum.Elapsed = time.Since(start)
	return sum, nil
}
