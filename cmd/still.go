package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Still renders one frozen frame of the dancer and writes the SVG document
// to a file or stdout. No library or network access is needed.
func (r *Runner) Still(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	dancer, err := r.buildDancer(config, nil, nil, int64(cmd.Int("seed")), 0, 0)
	if err != nil {
		return err
	}

	stageID := "main"
	if scale := cmd.Float("scale"); scale > 0 && scale != 1 {
		stageID = dancer.AddStage(scale)
	}

	dancer.Still()
	doc := dancer.Snapshot().Stages[stageID]

	outputPath := cmd.String("output")
	if outputPath == "" {
		return r.writePlain("%s\n", doc)
	}

	if err := os.WriteFile(outputPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write still frame: %w", err)
	}

	r.writePlain("✓ Still frame saved to %s\n", outputPath)
	return nil
}
