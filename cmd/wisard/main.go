// Package main implements the wisard CLI: train a model from a CSV dataset,
// evaluate a saved model, and predict single samples.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardohn/wisard"
	"github.com/leonardohn/wisard/bitvec"
	"github.com/leonardohn/wisard/dataset"
)

var (
	configPath string
	dataPath   string
	modelPath  string

	flagInputSize int
	flagAddrSize  int
	flagSeed      int64
	flagBackend   string
	flagBleach    int

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "wisard",
	Short:   "WiSARD weightless neural network classifier",
	Version: version,
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model from a CSV dataset and save it",
	Long: `Train a model from a CSV dataset and save it.

Each CSV record holds input_size cells of 0 or 1 followed by a label cell.
The label set is taken from the dataset.

Examples:
  wisard train --data iris.csv --out iris.wnn --config wisard.yaml
  wisard train --data iris.csv --out iris.wnn --input-size 64 --addr-size 4`,
	RunE: runTrain,
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a saved model against a CSV dataset",
	RunE:  runEval,
}

var predictCmd = &cobra.Command{
	Use:   "predict <bits>",
	Short: "Predict the label for a single bit string, e.g. 10110010",
	Args:  cobra.ExactArgs(1),
	RunE:  runPredict,
}

func init() {
	trainCmd.Flags().StringVar(&configPath, "config", "", "yaml config file")
	trainCmd.Flags().StringVar(&dataPath, "data", "", "training dataset (csv)")
	trainCmd.Flags().StringVar(&modelPath, "out", "model.wnn", "output model file")
	trainCmd.Flags().IntVar(&flagInputSize, "input-size", 0, "input size in bits (overrides config)")
	trainCmd.Flags().IntVar(&flagAddrSize, "addr-size", 0, "address size in bits (overrides config)")
	trainCmd.Flags().Int64Var(&flagSeed, "seed", 0, "permutation seed (overrides config)")
	trainCmd.Flags().StringVar(&flagBackend, "backend", "", "memory backend: exact, counting or bloom (overrides config)")
	trainCmd.Flags().IntVar(&flagBleach, "bleach", -1, "bleaching threshold (overrides config)")
	_ = trainCmd.MarkFlagRequired("data")

	evalCmd.Flags().StringVar(&modelPath, "model", "", "saved model file")
	evalCmd.Flags().StringVar(&dataPath, "data", "", "evaluation dataset (csv)")
	_ = evalCmd.MarkFlagRequired("model")
	_ = evalCmd.MarkFlagRequired("data")

	predictCmd.Flags().StringVar(&modelPath, "model", "", "saved model file")
	_ = predictCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(predictCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("input-size") {
		cfg.InputSize = flagInputSize
	}
	if cmd.Flags().Changed("addr-size") {
		cfg.AddrSize = flagAddrSize
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = flagBackend
	}
	if cmd.Flags().Changed("bleach") {
		cfg.Bleach = flagBleach
	}
	if cfg.InputSize <= 0 {
		return fmt.Errorf("input size must be set via --input-size or the config file")
	}

	ds, err := loadDataset(dataPath, cfg.InputSize)
	if err != nil {
		return err
	}
	labels := ds.Labels()
	logger.Info("dataset loaded",
		zap.String("path", dataPath),
		zap.Int("samples", ds.Len()),
		zap.Strings("labels", labels),
	)

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	m, err := wisard.New(cfg.InputSize, cfg.AddrSize, labels, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := dataset.Train(m, ds); err != nil {
		return err
	}
	logger.Info("model trained",
		zap.String("id", m.ID()),
		zap.Int("nodes", m.Nodes()),
		zap.Uint64("fits", m.Stats().Fits),
		zap.Duration("elapsed", time.Since(start)),
	)

	out, err := os.Create(modelPath)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer out.Close()
	if err := m.Save(out); err != nil {
		return err
	}
	logger.Info("model saved", zap.String("path", modelPath))
	return nil
}

func runEval(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	defer logger.Sync()

	m, err := loadModel(modelPath)
	if err != nil {
		return err
	}
	ds, err := loadDataset(dataPath, m.InputSize())
	if err != nil {
		return err
	}

	start := time.Now()
	accuracy, err := dataset.Evaluate(m, ds)
	if err != nil {
		return err
	}
	logger.Info("evaluation finished",
		zap.String("id", m.ID()),
		zap.Int("samples", ds.Len()),
		zap.Float64("accuracy", accuracy),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func runPredict(_ *cobra.Command, args []string) error {
	m, err := loadModel(modelPath)
	if err != nil {
		return err
	}

	bits := make([]bool, 0, len(args[0]))
	for i, r := range args[0] {
		switch r {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		default:
			return fmt.Errorf("position %d: %q is not a bit", i+1, r)
		}
	}
	if len(bits) != m.InputSize() {
		return fmt.Errorf("got %d bits, model expects %d", len(bits), m.InputSize())
	}

	label, err := m.Predict(bitvec.FromBools(bits))
	if err != nil {
		return err
	}
	fmt.Println(label)
	return nil
}

func loadModel(path string) (*wisard.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()
	return wisard.Load(f)
}

func loadDataset(path string, inputSize int) (*dataset.Dataset, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path must be set via --data")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return dataset.FromCSV(f, inputSize)
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	return zap.Must(cfg.Build())
}
