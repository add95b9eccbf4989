package main

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"irisml/internal/config"
	"irisml/internal/data"
	"irisml/internal/evaluation"
	"irisml/internal/models"
	"irisml/internal/store"
	"irisml/pkg/utils"
)

type options struct {
	Out     string
	Algo    string
	Params  models.Params
	CV      int
	RunsDB  string
	DumpCSV string
}

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "trainer",
		Short:         "Fit a classifier on the Iris dataset and write the model artifact",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := train(cmd.Context(), opts, logger)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Out, "out", config.DefaultModelPath, "Artifact output path")
	f.StringVar(&opts.Algo, "algo", "rf", "Algorithm: dt|rf|bagging|gb")
	f.IntVar(&opts.Params.Estimators, "estimators", 100, "Ensemble size (rf/bagging/gb)")
	f.IntVar(&opts.Params.MaxDepth, "max-depth", 0, "Maximum tree depth (0 = unlimited)")
	f.IntVar(&opts.Params.MinSamples, "min-samples", 2, "Minimum samples to split a node")
	f.IntVar(&opts.Params.MaxFeatures, "max-features", 0, "Features tried per split (0 = model default)")
	f.Float64Var(&opts.Params.LR, "lr", 0.1, "Learning rate for gb")
	f.Int64Var(&opts.Params.Seed, "seed", 42, "Random seed")
	f.IntVar(&opts.CV, "cv", 0, "Stratified k-fold report before the final fit (0 = off)")
	f.StringVar(&opts.RunsDB, "runs-db", "", "SQLite file to append the training run to")
	f.StringVar(&opts.DumpCSV, "dump-csv", "", "Also write the dataset as CSV to this path")
	return cmd
}

func train(ctx context.Context, opts options, logger *zap.Logger) (*models.Artifact, error) {
	ds, err := data.LoadIris()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("dataset", summarize(ds)...)
	counts := ds.ClassCounts()
	dist := make([]zap.Field, len(counts))
	for i, c := range counts {
		dist[i] = zap.Int(ds.TargetNames[i], c)
	}
	logger.Info("class distribution", dist...)

	if opts.DumpCSV != "" {
		if err := data.WriteCSV(opts.DumpCSV, ds); err != nil {
			return nil, fmt.Errorf("dump csv: %w", err)
		}
		logger.Info("dataset written", zap.String("path", opts.DumpCSV))
	}

	factory := func() (models.Model, error) { return models.Construct(opts.Algo, opts.Params) }
	if opts.CV > 1 {
		rep, err := evaluation.CrossValidate(factory, ds.X, ds.Y, len(ds.TargetNames), opts.CV, opts.Params.Seed)
		if err != nil {
			return nil, fmt.Errorf("cross-validate: %w", err)
		}
		for _, fr := range rep.Folds {
			logger.Debug("fold", zap.Int("fold", fr.Fold), zap.Float64("accuracy", fr.Accuracy), zap.Float64("macro_f1", fr.MacroF1))
		}
		logger.Info("cross-validation",
			zap.Int("k", opts.CV),
			zap.Float64("accuracy_mean", rep.MeanAccuracy),
			zap.Float64("accuracy_std", rep.StdAccuracy),
			zap.Float64("macro_f1_mean", rep.MeanMacroF1),
			zap.Any("confusion", rep.Confusion),
		)
	}

	mdl, err := factory()
	if err != nil {
		return nil, err
	}
	if err := mdl.Fit(ds.X, ds.Y); err != nil {
		return nil, fmt.Errorf("fit %s: %w", mdl.Name(), err)
	}
	pred := mdl.Predict(ds.X)
	acc := evaluation.Accuracy(ds.Y, pred)
	_, _, f1 := evaluation.MacroPRF1(ds.Y, pred, len(ds.TargetNames))
	logger.Info("training metrics", zap.String("model", mdl.Name()), zap.Float64("accuracy", acc), zap.Float64("macro_f1", f1))

	art := &models.Artifact{
		Algo:         opts.Algo,
		Classes:      ds.TargetNames,
		FeatureNames: ds.FeatureNames,
		Seed:         opts.Params.Seed,
		Model:        mdl,
	}
	if err := art.Save(opts.Out); err != nil {
		return nil, err
	}
	logger.Info("model saved", zap.String("path", opts.Out), zap.Int("estimators", art.Estimators()))

	if opts.RunsDB != "" {
		runs, err := store.Open(opts.RunsDB)
		if err != nil {
			return nil, err
		}
		defer runs.Close()
		id, err := runs.Insert(ctx, store.Run{
			ModelName:    mdl.Name(),
			Accuracy:     acc,
			F1:           f1,
			DataPoints:   ds.Len(),
			Seed:         opts.Params.Seed,
			ArtifactPath: opts.Out,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("run recorded", zap.String("db", opts.RunsDB), zap.Int64("id", id))
	}
	return art, nil
}

// summarize reports per-feature range and mean.
func summarize(ds *data.Dataset) []zap.Field {
	fields := []zap.Field{
		zap.Int("rows", ds.Len()),
		zap.Strings("features", ds.FeatureNames),
		zap.Strings("targets", ds.TargetNames),
	}
	for j, name := range ds.FeatureNames {
		lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
		for _, row := range ds.X {
			lo = math.Min(lo, row[j])
			hi = math.Max(hi, row[j])
			sum += row[j]
		}
		fields = append(fields, zap.String(name, fmt.Sprintf("min=%.1f max=%.1f mean=%.3f", lo, hi, sum/float64(ds.Len()))))
	}
	return fields
}
