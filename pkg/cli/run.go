package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tapilab/featscale/pkg/corpus"
	"github.com/tapilab/featscale/pkg/data"
	"github.com/tapilab/featscale/pkg/experiment"
	"github.com/tapilab/featscale/pkg/vectorize"
)

const minDocFreq = 2

var (
	termFlag = &cli.StringFlag{
		Name:  "term",
		Usage: "Vocabulary term whose feature column gets inflated (defaults to the configured term)",
	}

	weightFlag = &cli.Float64SliceFlag{
		Name:  "weight",
		Usage: "Inflation weight, can be specified multiple times (defaults to the configured list)",
	}

	cFlag = &cli.Float64SliceFlag{
		Name:  "c",
		Usage: "Inverse regularization strength, can be specified multiple times (defaults to the configured list)",
	}

	singleFlag = &cli.BoolFlag{
		Name:  "single",
		Usage: "Fit on only the target term's column, dropping the rest of the vocabulary",
	}

	foldsFlag = &cli.IntFlag{
		Name:  "folds",
		Usage: "Number of cross-validation folds (defaults to the configured count)",
	}

	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Random seed for shuffling and fold assignment (defaults to the configured seed)",
	}

	splitFlag = &cli.StringFlag{
		Name:  "split",
		Usage: fmt.Sprintf("Corpus split to train on [%s]", strings.Join(data.Splits, ", ")),
		Value: data.SplitTrain,
	}

	runCmd = &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run the feature-inflation experiment grid and print coefficient and posterior per run",
		UsageText: `featscale run --term order                           # configured weight and C grid
   featscale run --term order --weight 100 --c 0.1      # one cell of the grid
   featscale run --term order --single                  # isolate the term's column`,
		Action: cmdRun,
		Flags: []cli.Flag{
			termFlag,
			weightFlag,
			cFlag,
			singleFlag,
			foldsFlag,
			seedFlag,
			splitFlag,
		},
	}
)

func cmdRun(c *cli.Context) error {
	cfg := getConfig(c)

	term := c.String(termFlag.Name)
	if term == "" {
		term = cfg.Conf.Term
	}
	weights := c.Float64Slice(weightFlag.Name)
	if len(weights) == 0 {
		weights = cfg.Conf.Weights
	}
	cValues := c.Float64Slice(cFlag.Name)
	if len(cValues) == 0 {
		cValues = cfg.Conf.CValues
	}
	folds := c.Int(foldsFlag.Name)
	if folds == 0 {
		folds = cfg.Conf.Folds
	}
	seed := cfg.Conf.Seed
	if c.IsSet(seedFlag.Name) {
		seed = c.Int64(seedFlag.Name)
	}
	split := c.String(splitFlag.Name)

	corp, err := corpus.Load(cfg.DB, corpus.LoadOptions{
		Categories: cfg.Conf.Categories,
		Split:      split,
		Seed:       seed,
	})
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	slog.Info("corpus loaded", "documents", corp.Len(),
		"positive_class", corp.Classes[1])

	v := vectorize.NewCountVectorizer(minDocFreq, true)
	x, err := v.FitTransform(corp.Docs)
	if err != nil {
		return fmt.Errorf("vectorizing corpus: %w", err)
	}
	slog.Info("vectorized", "terms", v.VocabSize())

	results := make([]*experiment.Result, 0, len(cValues)*len(weights))
	for _, cv := range cValues {
		for _, w := range weights {
			res, err := experiment.Run(corp, v, x, experiment.Params{
				Term:          term,
				Weight:        w,
				C:             cv,
				Folds:         folds,
				Seed:          seed,
				SingleFeature: c.Bool(singleFlag.Name),
			})
			if err != nil {
				return fmt.Errorf("experiment (weight=%g, c=%g): %w", w, cv, err)
			}
			slog.Debug("grid cell", "weight", w, "c", cv, "mean_f1", res.MeanF1)
			results = append(results, res)
		}
	}

	if outputFormat != formatTable {
		return encode(results)
	}
	printResultTable(os.Stdout, results)
	return nil
}

// printResultTable writes the same tab-separated table the original
// analysis printed: a header then term, coefficient, and posterior per run,
// to three decimal places.
func printResultTable(w io.Writer, results []*experiment.Result) {
	fmt.Fprintf(w, "term\tcoef\tposterior\n")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\n", r.Term, r.Coef, r.Posterior)
	}
}
