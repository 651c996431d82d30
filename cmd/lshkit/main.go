// lshkit - probabilistic set-similarity search over MinHash sketches and a
// banded LSH index, for DNA reads and text documents alike.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxfuzzer/lshkit/internal/config"
	"github.com/fluxfuzzer/lshkit/internal/corpus"
	"github.com/fluxfuzzer/lshkit/internal/lshindex"
	"github.com/fluxfuzzer/lshkit/internal/lshparam"
	"github.com/fluxfuzzer/lshkit/internal/parallel"
	"github.com/fluxfuzzer/lshkit/internal/pipeline"
	"github.com/fluxfuzzer/lshkit/internal/report"
	"github.com/fluxfuzzer/lshkit/internal/shingle"
	"github.com/fluxfuzzer/lshkit/internal/simstat"
	"github.com/fluxfuzzer/lshkit/internal/sketch"
	"github.com/fluxfuzzer/lshkit/internal/synth"
	"github.com/fluxfuzzer/lshkit/internal/tui"
	"github.com/fluxfuzzer/lshkit/internal/web"
	"github.com/fluxfuzzer/lshkit/internal/wminhash"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

var version = "0.1.0-dev"

// Flags shared across index/query/dedup.
var (
	configFile string
	corpusPath string
	corpusFmt  string
	outputDir  string
	outputFmt  string
	enableTUI  bool

	queryContent string
	queryFile    string
	indexPath    string

	webPort string

	benchBases    int
	benchVariants int
	benchRate     float64
	benchStrategy string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lshkit",
		Short: "lshkit - probabilistic set-similarity search",
		Long: tui.Banner + `

lshkit builds MinHash / Weighted MinHash sketches over a corpus of DNA
reads or text documents and indexes them with banded LSH, surfacing
near-duplicate and nearest-neighbor pairs above a similarity threshold.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")

	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newDedupCmd())
	rootCmd.AddCommand(newWebCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lshkit version %s\n", version)
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "build a banded LSH index over a corpus, reporting neighbor pairs",
		RunE:  runIndex,
	}
	cmd.Flags().StringVarP(&corpusPath, "corpus", "i", "", "path to the corpus file (required)")
	cmd.Flags().StringVarP(&corpusFmt, "format", "f", "text", "corpus format: text, fasta, fastq")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./reports", "directory to write the report into")
	cmd.Flags().StringVar(&outputFmt, "report-format", "json", "report format: json, html, bin")
	cmd.Flags().BoolVar(&enableTUI, "tui", false, "show a live progress dashboard instead of log output")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

func newDedupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "index a corpus with the index's label dedup set enabled, reporting neighbor pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexWithDedup(cmd, args, true)
		},
	}
	cmd.Flags().StringVarP(&corpusPath, "corpus", "i", "", "path to the corpus file (required)")
	cmd.Flags().StringVarP(&corpusFmt, "format", "f", "text", "corpus format: text, fasta, fastq")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./reports", "directory to write the report into")
	cmd.Flags().StringVar(&outputFmt, "report-format", "json", "report format: json, html, bin")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "query a saved index for a document's neighbors",
		RunE:  runQuery,
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "path to a gob-saved lshindex.Index (required)")
	cmd.Flags().StringVar(&queryContent, "text", "", "inline query document")
	cmd.Flags().StringVar(&queryFile, "file", "", "path to a file holding the query document")
	cmd.MarkFlagRequired("index")
	return cmd
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "measure precision/recall against synthetic near-duplicates of a corpus",
		Long: `bench reads each document in the corpus as a base document, generates
synthetic near-duplicate variants of it via internal/synth, and indexes base
documents plus variants together. Ground truth is known by construction: a
base and its variants form one group. Precision and recall are computed per
document against that group and averaged over the run.`,
		RunE: runBench,
	}
	cmd.Flags().StringVarP(&corpusPath, "corpus", "i", "", "path to the corpus file (required)")
	cmd.Flags().StringVarP(&corpusFmt, "format", "f", "text", "corpus format: text, fasta, fastq")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./reports", "directory to write the report into")
	cmd.Flags().StringVar(&outputFmt, "report-format", "json", "report format: json, html, bin")
	cmd.Flags().IntVar(&benchBases, "bases", 20, "number of corpus documents to use as base documents (0 means all)")
	cmd.Flags().IntVar(&benchVariants, "variants", 5, "number of synthetic near-duplicate variants per base document")
	cmd.Flags().Float64Var(&benchRate, "mutation-rate", 0.05, "per-character mutation rate applied by internal/synth")
	cmd.Flags().StringVar(&benchStrategy, "strategy", "both", "mutation strategy: substitute, indel, both")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

func newWebCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "start the web dashboard over a fresh in-memory index",
		RunE:  runWeb,
	}
	cmd.Flags().StringVarP(&webPort, "port", "p", ":9090", "web dashboard listen address")
	return cmd
}

func corpusFormat(s string) (corpus.Format, error) {
	switch s {
	case "text":
		return corpus.Text, nil
	case "fasta":
		return corpus.FASTA, nil
	case "fastq":
		return corpus.FASTQ, nil
	default:
		return 0, fmt.Errorf("unknown corpus format %q", s)
	}
}

func buildFamily(cfg *config.Config) (*sketch.Family, error) {
	width := types.B64
	if cfg.Sketch.MinHashBits == 32 {
		width = types.B32
	}
	return sketch.NewFamily(cfg.Sketch.Seed, cfg.Sketch.NSamples, width, cfg.Sketch.CacheSize)
}

func buildWeightedFamily(cfg *config.Config) (*wminhash.Family, error) {
	return wminhash.NewFamily(cfg.Sketch.Seed, cfg.Sketch.NSamples, cfg.Sketch.WMHRowCap)
}

// newDocBuilder picks the component F (internal/wminhash) or component D
// (internal/sketch) builder based on cfg.Sketch.WeightingMode, returning a
// uniform BuildAll/Release pair so the rest of the index/dedup run doesn't
// need to care which lane-producing sketch family is underneath.
func newDocBuilder(cfg *config.Config) (buildAll func(ctx context.Context, docs <-chan pipeline.Document) ([]pipeline.Result, error), release func(), err error) {
	if cfg.Sketch.WeightingMode() == types.Absent {
		family, ferr := buildWeightedFamily(cfg)
		if ferr != nil {
			return nil, nil, ferr
		}
		wb, berr := pipeline.NewWeightedBuilder(cfg.Corpus.Workers, family, cfg.Sketch.K, cfg.Sketch.DNA, cfg.Sketch.Strict)
		if berr != nil {
			return nil, nil, berr
		}
		return wb.BuildAll, wb.Release, nil
	}

	family, ferr := buildFamily(cfg)
	if ferr != nil {
		return nil, nil, ferr
	}
	b, berr := pipeline.NewBuilder(cfg.Corpus.Workers, family, cfg.Sketch.K, cfg.Sketch.DNA, cfg.Sketch.Strict)
	if berr != nil {
		return nil, nil, berr
	}
	b.WithAnalysis(cfg.Analyze.EnableSimHash, cfg.Analyze.EnableTLSH && !cfg.Sketch.DNA)
	return b.BuildAll, b.Release, nil
}

func buildParams(cfg *config.Config) (lshparam.Params, error) {
	if cfg.LSH.Bands > 0 {
		return lshparam.Validate(cfg.LSH.Bands, cfg.LSH.Rows, cfg.Sketch.NSamples)
	}
	return lshparam.Optimize(cfg.Sketch.NSamples, cfg.LSH.Threshold, lshparam.Weights{
		FalsePositive: cfg.LSH.WeightFalsePos,
		FalseNegative: cfg.LSH.WeightFalseNeg,
	})
}

func runIndex(cmd *cobra.Command, args []string) error {
	return runIndexWithDedup(cmd, args, false)
}

func runIndexWithDedup(cmd *cobra.Command, args []string, forceDedup bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if forceDedup {
		cfg.LSH.Dedup = true
	}

	fmtKind, err := corpusFormat(corpusFmt)
	if err != nil {
		return err
	}

	params, err := buildParams(cfg)
	if err != nil {
		return err
	}

	idx, err := lshindex.New(cfg.Sketch.NSamples, params, cfg.LSH.Dedup)
	if err != nil {
		return err
	}

	buildAll, release, err := newDocBuilder(cfg)
	if err != nil {
		return err
	}
	defer release()

	reader, closeFn, err := corpus.Open(corpusPath, fmtKind, cfg.Corpus.RatePerSec)
	if err != nil {
		return err
	}
	defer closeFn()

	rep := report.NewReport("lshkit index run", idx.Bands, idx.Rows, cfg.LSH.Threshold)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sigChan
		cancel()
	}()

	var dash *tui.Dashboard
	if enableTUI {
		dash = tui.NewDashboard()
		dash.SetCorpusPath(corpusPath)
		dash.StartIndexing()
		go tui.Run(dash)
	}

	docs := make(chan pipeline.Document, cfg.Corpus.Workers*2)
	start := time.Now()

	// bp throttles corpus ingestion when docs fills up faster than the
	// sketch pool drains it, instead of just growing an unbounded channel.
	bp := parallel.NewBackpressureController(parallel.DefaultBackpressureConfig())
	go func() {
		defer close(docs)
		var label types.Label
		for {
			rec, err := reader.Next(ctx)
			if err != nil {
				return
			}
			bp.CheckPressure(len(docs), cap(docs)) // sleeps internally under StrategyAdaptive
			docs <- pipeline.Document{Label: label, Content: rec.Content}
			label++
		}
	}()

	// BuildAll fans the sketch builds out across the worker pool; results
	// come back in completion order, so they are sorted by label before
	// the sequential insert pass below, keeping dedup/insert order
	// independent of goroutine scheduling.
	results, buildErr := buildAll(ctx, docs)
	sort.Slice(results, func(i, j int) bool { return results[i].Label < results[j].Label })

	lanes := make(map[types.Label][]uint64, len(results))
	byLabel := make(map[types.Label]pipeline.Result, len(results))
	var docCount, dupCount int64

	for _, res := range results {
		if res.Err != nil {
			if enableTUI {
				dash.AddLog("ERROR", res.Err.Error())
			} else {
				fmt.Fprintf(os.Stderr, "[!] skipping document %d: %v\n", res.Label, res.Err)
			}
			continue
		}

		neighbors, err := idx.QueryThenInsert(res.Lanes, res.Label)
		if err != nil {
			return err
		}
		lanes[res.Label] = res.Lanes
		byLabel[res.Label] = res
		bp.RecordProcessed()
		docCount++

		for _, n := range neighbors {
			sim := simstat.LaneAgreement(res.Lanes, lanes[n])
			rep.AddPair(res.Label, n, sim)
			if sim >= 0.999999 {
				dupCount++
			}
			crossCheckPair(res, byLabel[n], sim, enableTUI, dash)
		}

		if enableTUI {
			dash.GetStats().RecordSketch(time.Since(start) / time.Duration(docCount+1))
			dash.GetStats().RecordInsert()
			for _, n := range neighbors {
				dash.GetStats().RecordPair(string(bucket(simstat.LaneAgreement(res.Lanes, lanes[n]))))
			}
			dash.GetStats().UpdateProgress(docCount, int64(len(results)))
		}
	}
	if buildErr != nil {
		return buildErr
	}

	elapsed := time.Since(start)
	rep.SetStatistics(report.Statistics{
		DocumentsIndexed: docCount,
		QueriesRun:       docCount,
		Duplicates:       dupCount,
		Duration:         elapsed,
		DocsPerSec:       float64(docCount) / elapsed.Seconds(),
	})

	if enableTUI {
		dash.Complete()
	}

	mgr := report.NewManager(outputDir)
	path, err := mgr.Generate(rep, outputFmt)
	if err != nil {
		return err
	}

	fmt.Printf("[*] indexed %d documents, found %d neighbor pairs (%d exact duplicates)\n", docCount, len(rep.Pairs), dupCount)
	if stats := bp.GetStats(); stats.PressureEvents > 0 {
		fmt.Printf("[*] ingestion throttled %d time(s) (final rate %s)\n", stats.PressureEvents, time.Duration(stats.CurrentRateNs))
	}
	fmt.Printf("[*] report written to %s\n", path)
	return nil
}

// crossCheckPair compares the MinHash-estimated similarity for a surfaced
// pair against the cheaper SimHash/TLSH pre-filters, when the Builder was
// asked to compute them, and logs a note when they disagree sharply --
// a sign the LSH bands picked up a collision the fuzzy hashes don't see
// as near-duplicate, worth a second look rather than blind trust in either
// signal alone.
func crossCheckPair(query, neighbor pipeline.Result, minHashSim float64, useTUI bool, dash *tui.Dashboard) {
	const disagreement = 40.0 // percentage points
	minHashPct := minHashSim * 100

	if query.SimHash != 0 && neighbor.SimHash != 0 {
		simHashPct := query.SimHash.Similarity(neighbor.SimHash)
		if absFloat(simHashPct-minHashPct) >= disagreement {
			note := fmt.Sprintf("simhash/minhash disagreement for (%d,%d): simhash=%.1f%% minhash=%.1f%%",
				query.Label, neighbor.Label, simHashPct, minHashPct)
			logNote(note, useTUI, dash)
		}
	}

	if query.TLSH != nil && neighbor.TLSH != nil {
		tlshPct := query.TLSH.Similarity(neighbor.TLSH)
		if absFloat(tlshPct-minHashPct) >= disagreement {
			note := fmt.Sprintf("tlsh/minhash disagreement for (%d,%d): tlsh=%.1f%% minhash=%.1f%%",
				query.Label, neighbor.Label, tlshPct, minHashPct)
			logNote(note, useTUI, dash)
		}
	}
}

func logNote(msg string, useTUI bool, dash *tui.Dashboard) {
	if useTUI {
		dash.AddLog("WARN", msg)
		return
	}
	fmt.Fprintf(os.Stderr, "[!] %s\n", msg)
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// bucket mirrors internal/report's confidence bucketing so the live TUI
// counters agree with the final written report.
func bucket(similarity float64) report.Confidence {
	switch {
	case similarity >= 0.8:
		return report.ConfidenceHigh
	case similarity >= 0.5:
		return report.ConfidenceMedium
	default:
		return report.ConfidenceLow
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	content := []byte(queryContent)
	if queryFile != "" {
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return err
		}
		content = data
	}
	if len(content) == 0 {
		return fmt.Errorf("query requires --text or --file")
	}

	idx, err := lshindex.Load(indexPath)
	if err != nil {
		return err
	}

	var lanes []uint64
	if cfg.Sketch.WeightingMode() == types.Absent {
		family, err := buildWeightedFamily(cfg)
		if err != nil {
			return err
		}
		sk := family.NewSketch()
		if cfg.Sketch.DNA {
			set, err := shingle.DNA(content, cfg.Sketch.K, cfg.Sketch.Strict)
			if err != nil {
				return err
			}
			if err := sk.UpdateDNA(set.Weighted()); err != nil {
				return err
			}
		} else {
			set, err := shingle.Text(content, cfg.Sketch.K)
			if err != nil {
				return err
			}
			weights := make(map[string]float64, len(set))
			for token, count := range set {
				weights[token] = float64(count)
			}
			if err := sk.Update(weights); err != nil {
				return err
			}
		}
		lanes = sk.Lanes()
	} else {
		family, err := buildFamily(cfg)
		if err != nil {
			return err
		}
		sk := family.NewSketch()
		if cfg.Sketch.DNA {
			set, err := shingle.DNA(content, cfg.Sketch.K, cfg.Sketch.Strict)
			if err != nil {
				return err
			}
			sk.UpdateDNASet(set)
		} else {
			set, err := shingle.Text(content, cfg.Sketch.K)
			if err != nil {
				return err
			}
			sk.UpdateMultiset(set)
		}
		lanes = sk.Lanes()
	}

	neighbors, err := idx.Query(lanes)
	if err != nil {
		return err
	}

	fmt.Printf("[*] %d neighbor(s): %v\n", len(neighbors), neighbors)
	return nil
}

func synthStrategy(s string) (synth.Strategy, error) {
	switch s {
	case "substitute":
		return synth.Substitute, nil
	case "indel":
		return synth.Indel, nil
	case "both":
		return synth.Both, nil
	default:
		return 0, fmt.Errorf("unknown mutation strategy %q", s)
	}
}

// runBench builds a synthetic corpus of known near-duplicate groups, indexes
// it, and reports the LSH index's precision/recall against that ground
// truth -- the measurement internal/report.Statistics' Precision/Recall
// fields and internal/synth exist for.
func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmtKind, err := corpusFormat(corpusFmt)
	if err != nil {
		return err
	}
	strategy, err := synthStrategy(benchStrategy)
	if err != nil {
		return err
	}

	reader, closeFn, err := corpus.Open(corpusPath, fmtKind, cfg.Corpus.RatePerSec)
	if err != nil {
		return err
	}
	defer closeFn()

	var synthOpts []synth.Option
	synthOpts = append(synthOpts, synth.WithStrategy(strategy))
	if cfg.Sketch.DNA {
		synthOpts = append(synthOpts, synth.WithAlphabet([]byte("ATCG")))
	}
	gen := synth.New(cfg.Sketch.Seed, benchRate, synthOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// groupOf maps every label (base or variant) to the base document's
	// index, so two labels are ground-truth neighbors iff they share a
	// group. docs holds every document to sketch, in label order.
	var docs []pipeline.Document
	groupOf := make(map[types.Label]int)

	var label types.Label
	for group := 0; benchBases <= 0 || group < benchBases; group++ {
		rec, err := reader.Next(ctx)
		if err != nil {
			break
		}

		baseLabel := label
		docs = append(docs, pipeline.Document{Label: baseLabel, Content: rec.Content})
		groupOf[baseLabel] = group
		label++

		for _, variant := range gen.GeneratePairs(rec.Content, benchVariants) {
			docs = append(docs, pipeline.Document{Label: label, Content: variant})
			groupOf[label] = group
			label++
		}
	}
	if len(docs) == 0 {
		return fmt.Errorf("bench: corpus %s yielded no documents", corpusPath)
	}

	params, err := buildParams(cfg)
	if err != nil {
		return err
	}
	idx, err := lshindex.New(cfg.Sketch.NSamples, params, false)
	if err != nil {
		return err
	}

	buildAll, release, err := newDocBuilder(cfg)
	if err != nil {
		return err
	}
	defer release()

	docCh := make(chan pipeline.Document, len(docs))
	for _, d := range docs {
		docCh <- d
	}
	close(docCh)

	start := time.Now()
	results, buildErr := buildAll(ctx, docCh)
	if buildErr != nil {
		return buildErr
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Label < results[j].Label })

	rep := report.NewReport("lshkit bench run", idx.Bands, idx.Rows, cfg.LSH.Threshold)

	lanes := make(map[types.Label][]uint64, len(results))
	precisions := make([]float64, 0, len(results))
	recalls := make([]float64, 0, len(results))

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "[!] skipping document %d: %v\n", res.Label, res.Err)
			continue
		}

		neighbors, err := idx.QueryThenInsert(res.Lanes, res.Label)
		if err != nil {
			return err
		}
		lanes[res.Label] = res.Lanes

		for _, n := range neighbors {
			rep.AddPair(res.Label, n, simstat.LaneAgreement(res.Lanes, lanes[n]))
		}

		truth := groupLabels(groupOf, res.Label)
		precision, recall := simstat.PrecisionRecall(neighbors, truth)
		precisions = append(precisions, precision)
		recalls = append(recalls, recall)
	}

	elapsed := time.Since(start)
	meanPrecision, meanRecall := simstat.Mean(precisions), simstat.Mean(recalls)
	rep.SetStatistics(report.Statistics{
		DocumentsIndexed: int64(len(docs)),
		QueriesRun:       int64(len(results)),
		Duration:         elapsed,
		DocsPerSec:       float64(len(docs)) / elapsed.Seconds(),
		Precision:        meanPrecision,
		Recall:           meanRecall,
	})

	mgr := report.NewManager(outputDir)
	path, err := mgr.Generate(rep, outputFmt)
	if err != nil {
		return err
	}

	fmt.Printf("[*] benched %d documents (%d groups, %d variants each): precision=%.3f recall=%.3f f-score=%.3f\n",
		len(docs), benchBasesUsed(groupOf), benchVariants, meanPrecision, meanRecall, simstat.FScore(meanPrecision, meanRecall))
	fmt.Printf("[*] report written to %s\n", path)
	return nil
}

// groupLabels returns every label sharing res's ground-truth group, itself
// excluded -- the truth set simstat.PrecisionRecall scores found neighbors
// against.
func groupLabels(groupOf map[types.Label]int, self types.Label) []types.Label {
	group := groupOf[self]
	var out []types.Label
	for label, g := range groupOf {
		if g == group && label != self {
			out = append(out, label)
		}
	}
	return out
}

func benchBasesUsed(groupOf map[types.Label]int) int {
	seen := make(map[int]struct{})
	for _, g := range groupOf {
		seen[g] = struct{}{}
	}
	return len(seen)
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println(tui.Banner)
	fmt.Printf("\n[*] dashboard listening at http://localhost%s\n", webPort)
	fmt.Println("[*] press Ctrl+C to stop")

	go func() {
		if err := server.Start(webPort); err != nil {
			fmt.Fprintf(os.Stderr, "[!] server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	fmt.Println("\n[*] shutting down...")
	return server.Stop()
}
