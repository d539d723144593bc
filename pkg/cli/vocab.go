package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tapilab/featscale/pkg/corpus"
	"github.com/tapilab/featscale/pkg/vectorize"
)

const vocabResultLimitDefault = 25

var (
	vocabLikeFlag = &cli.StringFlag{
		Name:     "like",
		Usage:    "Substring to search vocabulary terms for",
		Required: true,
	}

	vocabLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of terms returned",
		Value: vocabResultLimitDefault,
	}

	vocabCmd = &cli.Command{
		Name:      "vocab",
		Aliases:   []string{"v"},
		Usage:     "Search the fitted vocabulary for terms to experiment with",
		UsageText: `featscale vocab --like athe --limit 10`,
		Action:    cmdVocab,
		Flags: []cli.Flag{
			vocabLikeFlag,
			vocabLimitFlag,
			splitFlag,
			seedFlag,
		},
	}
)

// VocabTerm is one vocabulary match.
type VocabTerm struct {
	Term    string `json:"term" yaml:"term"`
	Index   int    `json:"index" yaml:"index"`
	DocFreq int    `json:"doc_freq" yaml:"docFreq"`
}

func cmdVocab(c *cli.Context) error {
	cfg := getConfig(c)

	like := strings.ToLower(c.String(vocabLikeFlag.Name))
	limit := c.Int(vocabLimitFlag.Name)

	seed := cfg.Conf.Seed
	if c.IsSet(seedFlag.Name) {
		seed = c.Int64(seedFlag.Name)
	}

	corp, err := corpus.Load(cfg.DB, corpus.LoadOptions{
		Categories: cfg.Conf.Categories,
		Split:      c.String(splitFlag.Name),
		Seed:       seed,
	})
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	v := vectorize.NewCountVectorizer(minDocFreq, true)
	if err := v.Fit(corp.Docs); err != nil {
		return fmt.Errorf("fitting vocabulary: %w", err)
	}

	var matches []*VocabTerm
	for i, term := range v.Terms() {
		if !strings.Contains(term, like) {
			continue
		}
		matches = append(matches, &VocabTerm{
			Term:    term,
			Index:   i,
			DocFreq: v.DocFreq(term),
		})
		if len(matches) >= limit {
			break
		}
	}

	if outputFormat != formatTable {
		return encode(matches)
	}

	fmt.Fprintf(os.Stdout, "term\tindex\tdoc_freq\n")
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%s\t%d\t%d\n", m.Term, m.Index, m.DocFreq)
	}
	return nil
}
