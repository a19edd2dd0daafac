package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RefreshWorkflowID is the single long-running refresh workflow per namespace.
const RefreshWorkflowID = "oebbdash-board-refresh"

// maxRoundsPerRun bounds history growth before continuing as new.
const maxRoundsPerRun = 100

// RefreshInput is the input for the board refresh workflow.
type RefreshInput struct {
	Interval time.Duration
}

// RefreshWorkflow refreshes every board, sleeps for the interval and repeats.
// Boards refresh in parallel; one failing board does not stop the round.
func RefreshWorkflow(ctx workflow.Context, input RefreshInput) error {
	logger := workflow.GetLogger(ctx)
	if input.Interval <= 0 {
		input.Interval = 2 * time.Minute
	}

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: input.Interval,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	for round := 0; round < maxRoundsPerRun; round++ {
		var boards []string
		if err := workflow.ExecuteActivity(ctx, ListBoardsActivity).Get(ctx, &boards); err != nil {
			logger.Warn("listing boards failed, skipping round", "error", err)
		}

		futures := make([]workflow.Future, len(boards))
		for i, board := range boards {
			futures[i] = workflow.ExecuteActivity(ctx, RefreshBoardActivity, board)
		}
		failed := 0
		for i, f := range futures {
			var summary RefreshSummary
			if err := f.Get(ctx, &summary); err != nil {
				logger.Warn("board refresh failed", "board", boards[i], "error", err)
				continue
			}
			failed += summary.Failed
		}
		logger.Info("refresh round done", "boards", len(boards), "failedPairs", failed)

		if err := workflow.Sleep(ctx, input.Interval); err != nil {
			return err
		}
	}

	return workflow.NewContinueAsNewError(ctx, RefreshWorkflow, input)
}
