package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cropd/internal/artifact"
	"cropd/internal/imageproc"
	"cropd/internal/onnx"
	"cropd/pkg/types"
)

func newPredictCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "predict <image-file>",
		Short:   "Classify a single image file and print the prediction as JSON",
		Example: "  cropd predict leaf.jpg\n  cropd predict --model-paths ./model.onnx --softmax leaf.png",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, osLookup)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			img, _, err := imageproc.Decode(b)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			clf := loadClassifier(cfg, log)
			defer onnx.Destroy()
			defer clf.Close()
			if !clf.Ready() {
				return fmt.Errorf("model not loaded: %w", clf.LoadErr())
			}
			pred, err := clf.PredictImage(cmd.Context(), img)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(types.PredictResponse{Prediction: pred})
		},
	}
}

func newLabelsCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Print the label list the service would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, osLookup)
			if err != nil {
				return err
			}
			labels, fromDefault, err := artifact.LoadLabels(cfg.LabelsPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(labels)
			}
			if fromDefault {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s not found, using built-in labels\n", cfg.LabelsPath)
			}
			for i, l := range labels {
				fmt.Fprintf(out, "%d\t%s\n", i, l)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print labels as a JSON array")
	return cmd
}
