package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/client/services"
)

// Analyze starts a video-analysis job for a presentation and watches it to
// completion, printing progress as the backend reports it.
func (a *App) Analyze(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter presentation id", os.Stdout)
	if err != nil {
		return err
	}

	jobID, err := a.analysis.Start(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Analysis started (job %s), waiting...\n", jobID)

	res, err := a.analysis.Await(ctx, jobID, services.PollOptions{
		Interval:    a.config.PollInterval,
		MaxAttempts: a.config.PollMaxAttempts,
		OnProgress: func(st models.AnalysisStatus) {
			fmt.Printf("  %s %d%%\n", st.State, st.Progress)
		},
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Analysis complete")
	if res.Summary != "" {
		fmt.Println(res.Summary)
	}
	for _, line := range res.Feedback {
		fmt.Println(" -", line)
	}
	return nil
}

// Feedback prints the stored coaching feedback for a finished job.
func (a *App) Feedback(ctx context.Context) error {
	jobID, err := GetSimpleText(a.reader, "Enter job id", os.Stdout)
	if err != nil {
		return err
	}

	ok, err := a.analysis.HasResults(ctx, jobID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if !ok {
		fmt.Println("No results yet")
		return nil
	}

	lines, err := a.analysis.Feedback(ctx, jobID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, line := range lines {
		fmt.Println(" -", line)
	}
	return nil
}
