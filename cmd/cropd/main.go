package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cropd/internal/config"
)

// options collects flag targets. Only flags the user actually set override
// the config file and environment.
type options struct {
	configPath  string
	modelPaths  string
	corsOrigins string
	cfg         config.Config
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "cropd:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&options{}) }

// newRootCmdWith constructs the command tree with flags bound to opts.
func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "cropd",
		Short:         "Crop leaf disease classifier HTTP service",
		Long:          "cropd loads an ONNX crop disease model at startup and serves GET /, GET /health and POST /predict.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to $CROPD_CONFIG")
	pf.StringVar(&opts.modelPaths, "model-paths", "", "Comma-separated model artifact candidates, first existing wins (default ml/export/model.onnx,ml/export/model.ort)")
	pf.StringVar(&opts.cfg.LabelsPath, "labels", "", "Labels JSON file (default ml/export/labels.json)")
	pf.StringVar(&opts.cfg.OnnxLibrary, "onnx-lib", "", "ONNX Runtime shared library (defaults to $ONNXRUNTIME_LIB or the platform default)")
	pf.IntVar(&opts.cfg.IntraOpThreads, "intra-op-threads", 0, "ONNX Runtime intra-op threads (0 = runtime default)")
	pf.IntVar(&opts.cfg.InterOpThreads, "inter-op-threads", 0, "ONNX Runtime inter-op threads (0 = runtime default)")
	pf.BoolVar(&opts.cfg.ApplySoftmax, "softmax", false, "Apply softmax to model outputs before picking the top class")
	pf.BoolVar(&opts.cfg.AllowLabelMismatch, "allow-label-mismatch", false, "Start even if the label count differs from the model output width")
	pf.StringVar(&opts.cfg.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default info)")
	pf.StringVar(&opts.cfg.LogFormat, "log-format", "", "Log format: json|console (default json)")

	f := root.Flags()
	f.StringVar(&opts.cfg.Addr, "addr", "", "HTTP listen address (default :5000)")
	f.BoolVar(&opts.cfg.RequireModel, "require-model", false, "Exit with an error instead of serving when the model fails to load")
	f.BoolVar(&opts.cfg.HideErrors, "hide-errors", false, "Return a generic message instead of raw error text on prediction failures")
	f.Int64Var(&opts.cfg.MaxBodyBytes, "max-body-bytes", 0, "Maximum /predict request body in bytes (default 10MiB)")
	f.Int64Var(&opts.cfg.InferTimeoutSeconds, "infer-timeout", 0, "Per-request prediction timeout in seconds (0 disables)")
	f.BoolVar(&opts.cfg.CORSDisabled, "cors-disabled", false, "Disable the CORS middleware")
	f.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (default *)")

	root.AddCommand(newPredictCmd(opts), newLabelsCmd(opts))
	return root
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
