package core

import "fmt"

// Stage names one discrete transformation step of the pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageInitialChecks     Stage = "initial_checks"
	StageContentExtraction Stage = "content_extraction"
	StageCategorization    Stage = "categorization"
	StageContentAnalysis   Stage = "content_analysis"
	StageEmbedding         Stage = "embedding_generation"
	StageFinalization      Stage = "finalization"
)

// Stages lists all pipeline stages in execution order.
var Stages = []Stage{
	StageInitialChecks,
	StageContentExtraction,
	StageCategorization,
	StageContentAnalysis,
	StageEmbedding,
	StageFinalization,
}

// ParseStage validates a stage name coming off the wire.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// ActionKind classifies what the dispatcher must do with a record after a
// stage executes.
type ActionKind int

const (
	// ActionAdvance enqueues the record for the next stage.
	ActionAdvance ActionKind = iota + 1
	// ActionDrop terminates the record without a store write.
	ActionDrop
	// ActionBlacklist terminates the record with a blacklist-store write.
	ActionBlacklist
	// ActionComplete marks the record terminally processed; the stage has
	// already performed its durable writes.
	ActionComplete
	// ActionRetry re-delivers the task after the stage's backoff delay.
	ActionRetry
)

// Outcome is the explicit result of a stage execution. Stage functions
// return one and the dispatcher loop performs the corresponding queue or
// store operation, keeping business logic free of queue mechanics.
type Outcome struct {
	Kind   ActionKind
	Next   Stage  // set for ActionAdvance
	Reason string // set for ActionDrop and ActionBlacklist
	Err    error  // set for ActionRetry
}

// Advance routes the record to the given stage.
func Advance(next Stage) Outcome {
	return Outcome{Kind: ActionAdvance, Next: next}
}

// Drop terminates the record without persisting it.
func Drop(reason string) Outcome {
	return Outcome{Kind: ActionDrop, Reason: reason}
}

// Blacklist terminates the record into the blacklist store.
func Blacklist(reason string) Outcome {
	return Outcome{Kind: ActionBlacklist, Reason: reason}
}

// Complete marks the record terminally handled by the stage itself.
func Complete() Outcome {
	return Outcome{Kind: ActionComplete}
}

// Retry asks the dispatcher to re-deliver the task later.
func Retry(err error) Outcome {
	return Outcome{Kind: ActionRetry, Err: err}
}
