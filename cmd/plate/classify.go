package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/classify"
	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/taxonomy"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <label>...",
		Short: "Classify food labels into the taxonomy",
		Long: `Classify raw food labels into the fixed nutrition taxonomy, without
touching the database. Useful for checking how a label will land.
Labels come from the arguments, or from a vision output file with --file.

Examples:
  plate classify "banana"
  plate classify "Fried Chicken (2 pieces)" "diet cola"
  plate classify --file photo-123.json`,
		Args: cobra.ArbitraryArgs,
		RunE: runClassify,
	}

	cmd.Flags().String("hint", "", "taxonomy hint from the vision model")
	cmd.Flags().StringP("file", "f", "", "vision output JSON file to classify")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	hint, _ := cmd.Flags().GetString("hint")
	file, _ := cmd.Flags().GetString("file")

	detections := make([]model.RawDetection, 0, len(args))
	for _, label := range args {
		detections = append(detections, model.RawDetection{
			RawLabel:     label,
			TaxonomyHint: hint,
		})
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		var in ingestFile
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		detections = append(detections, in.Items...)
	}
	if len(detections) == 0 {
		return fmt.Errorf("nothing to classify: pass labels or --file")
	}

	classifier := classify.New(taxonomy.Default())
	for _, det := range detections {
		fmt.Println(cli.RenderClassification(classifier.Resolve(det)))
	}

	return nil
}
