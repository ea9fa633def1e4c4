package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/engine"
	"github.com/platewise/platewise/internal/model"
)

// ingestFile is one photo's vision output on disk.
type ingestFile struct {
	PhotoID     string               `json:"photo_id"`
	UserID      string               `json:"user_id"`
	TakenAt     time.Time            `json:"taken_at"`
	StoragePath string               `json:"storage_path,omitempty"`
	OCRText     string               `json:"ocr_text,omitempty"`
	Items       []model.RawDetection `json:"items"`
}

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file.json>...",
		Short: "Ingest vision output files through the pipeline",
		Long: `Run one or more vision output files through the full pipeline:
classification, day aggregation, month aggregation, and pattern flags.

Each file holds one photo's detections:
  {"photo_id": "...", "user_id": "...", "taken_at": "2026-08-05T12:30:00Z",
   "ocr_text": "...", "items": [{"raw_label": "banana", "confidence": 0.95}]}

Examples:
  plate ingest photo-123.json
  plate ingest exports/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, cfg, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	eng, err := newEngine(db, cfg, false)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.Default(int64(len(args)), "ingesting photos")
	}

	var failed int
	for _, path := range args {
		if err := ingestOne(ctx, eng, path); err != nil {
			slog.Error("ingest failed", "file", path, "error", err)
			failed++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("ingested %d photo(s)", len(args))))
	return nil
}

func ingestOne(ctx context.Context, eng *engine.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var in ingestFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if in.PhotoID == "" || in.UserID == "" || in.TakenAt.IsZero() {
		return fmt.Errorf("%s: photo_id, user_id and taken_at are required", path)
	}

	photo := &model.Photo{
		ID:          in.PhotoID,
		UserID:      in.UserID,
		TakenAt:     in.TakenAt,
		StoragePath: in.StoragePath,
	}
	output := model.VisionOutput{
		PhotoID: in.PhotoID,
		OCRText: in.OCRText,
		Items:   in.Items,
	}

	result, err := eng.ProcessPhotoItems(ctx, photo, output)
	if err != nil {
		return err
	}

	slog.Info("photo ingested",
		"photo_id", in.PhotoID,
		"user_id", in.UserID,
		"items", len(result.Items),
		"flags", result.MonthTotal.Flags)
	return nil
}
