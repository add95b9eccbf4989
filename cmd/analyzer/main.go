package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"irisml/internal/data"
	"irisml/internal/evaluation"
	"irisml/internal/models"
	"irisml/pkg/utils"
)

type options struct {
	Algo      string
	Params    models.Params
	Points    int
	Min       int
	TestRatio float64
	OutCSV    string
	OutImg    string
	ImpImg    string
}

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "analyzer",
		Short:         "Learning curve and feature importances for an Iris classifier",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := analyze(opts, logger)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Algo, "algo", "rf", "Algorithm: dt|rf|bagging|gb")
	f.IntVar(&opts.Params.Estimators, "estimators", 100, "Ensemble size (rf/bagging/gb)")
	f.IntVar(&opts.Params.MaxDepth, "max-depth", 0, "Maximum tree depth (0 = unlimited)")
	f.IntVar(&opts.Params.MinSamples, "min-samples", 2, "Minimum samples to split a node")
	f.Float64Var(&opts.Params.LR, "lr", 0.1, "Learning rate for gb")
	f.Int64Var(&opts.Params.Seed, "seed", 42, "Random seed")
	f.IntVar(&opts.Points, "points", 8, "Points on the curve")
	f.IntVar(&opts.Min, "min", 15, "Smallest training size")
	f.Float64Var(&opts.TestRatio, "test-ratio", 0.2, "Holdout fraction per class")
	f.StringVar(&opts.OutCSV, "out-csv", "data/learning_curve.csv", "Curve CSV output")
	f.StringVar(&opts.OutImg, "out-img", "data/learning_curve.png", "Curve PNG output")
	f.StringVar(&opts.ImpImg, "importances-img", "data/feature_importances.png", "Importances PNG output (empty = skip)")
	return cmd
}

func analyze(opts options, logger *zap.Logger) ([]evaluation.CurvePoint, error) {
	ds, err := data.LoadIris()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	factory := func() (models.Model, error) { return models.Construct(opts.Algo, opts.Params) }

	pts, err := evaluation.LearningCurve(factory, ds.X, ds.Y, len(ds.TargetNames), opts.Points, opts.Min, opts.TestRatio, opts.Params.Seed)
	if err != nil {
		return nil, fmt.Errorf("learning curve: %w", err)
	}
	for _, p := range pts {
		logger.Info("curve point",
			zap.String("algo", opts.Algo),
			zap.Int("size", p.Size),
			zap.Float64("train_acc", p.TrainAcc),
			zap.Float64("test_acc", p.TestAcc),
			zap.Float64("test_macro_f1", p.TestF1),
		)
	}

	if err := evaluation.WriteCurveCSV(opts.OutCSV, pts); err != nil {
		logger.Warn("write curve csv", zap.String("path", opts.OutCSV), zap.Error(err))
	} else {
		logger.Info("curve csv written", zap.String("path", opts.OutCSV))
	}
	title := fmt.Sprintf("Learning curve (%s)", opts.Algo)
	if err := evaluation.PlotCurvePNG(opts.OutImg, title, pts); err != nil {
		logger.Warn("plot curve", zap.String("path", opts.OutImg), zap.Error(err))
	} else {
		logger.Info("curve png written", zap.String("path", opts.OutImg))
	}

	if opts.ImpImg == "" {
		return pts, nil
	}
	mdl, err := factory()
	if err != nil {
		return nil, err
	}
	if err := mdl.Fit(ds.X, ds.Y); err != nil {
		return nil, fmt.Errorf("fit %s: %w", mdl.Name(), err)
	}
	imp, ok := mdl.(models.Importancer)
	if !ok {
		logger.Info("model has no feature importances", zap.String("model", mdl.Name()))
		return pts, nil
	}
	vals := imp.FeatureImportances(len(ds.FeatureNames))
	fields := make([]zap.Field, len(vals))
	for i, v := range vals {
		fields[i] = zap.Float64(ds.FeatureNames[i], v)
	}
	logger.Info("feature importances", fields...)
	if err := evaluation.PlotImportancesPNG(opts.ImpImg, "Feature importances ("+mdl.Name()+")", ds.FeatureNames, vals); err != nil {
		logger.Warn("plot importances", zap.String("path", opts.ImpImg), zap.Error(err))
	}
	return pts, nil
}
