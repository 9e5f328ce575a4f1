package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rconan/windloading/internal/bundle"
	"github.com/rconan/windloading/internal/config"
	"github.com/rconan/windloading/internal/corpus"
	"github.com/rconan/windloading/internal/loads"
	"github.com/rconan/windloading/internal/runner"
	"github.com/rconan/windloading/internal/source"
	"github.com/rconan/windloading/internal/storage"
	"github.com/rconan/windloading/internal/tui"
)

var (
	configFile string
	dataDir    string
	samplingHz float64
	tMin       float64
	tMax       float64
	decimate   int
	samples    int
	asm        bool
	channels   []string
	component  int
	channel    string
	frameRate  int
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "windload",
		Short: "stream CFD wind loads into a structural simulation",
	}

	infoCmd := &cobra.Command{
		Use:   "info [bundle]",
		Short: "list the channels of a load bundle",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [bundle]",
		Short: "plot one channel component over time",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().StringVar(&channel, "channel", loads.TopEnd.String(), "channel name")
	previewCmd.Flags().IntVar(&component, "component", 0, "sample component index")

	runCmd := &cobra.Command{
		Use:   "run [bundle]",
		Short: "stream a scenario and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [bundle]",
		Short: "stream a scenario in a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")

	packCmd := &cobra.Command{
		Use:   "pack [dir] [bundle]",
		Short: "assemble a load bundle from per-channel CSV files",
		Args:  cobra.ExactArgs(2),
		RunE:  runPack,
	}

	rootCmd.AddCommand(infoCmd, previewCmd, runCmd, liveCmd, packCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset ("+strings.Join(config.ListPresets(), ", ")+")")
	cmd.Flags().StringVar(&dataDir, "data", ".windload", "run data directory")
	cmd.Flags().Float64Var(&samplingHz, "hz", config.DefaultSamplingHz, "CFD sampling frequency")
	cmd.Flags().Float64Var(&tMin, "tmin", 0, "window lower time bound")
	cmd.Flags().Float64Var(&tMax, "tmax", 0, "window upper time bound")
	cmd.Flags().IntVar(&decimate, "decimate", 1, "decimation rate")
	cmd.Flags().IntVar(&samples, "samples", 0, "sample count override")
	cmd.Flags().BoolVar(&asm, "asm", false, "route top-end and M2 loads to the ASM inputs")
	cmd.Flags().StringSliceVar(&channels, "channels", nil, "explicit channel selection")
}

func scenarioConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	case preset != "":
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	default:
		cfg = config.DefaultConfig()
		cfg.DataDir = dataDir
		cfg.SamplingHz = samplingHz
		cfg.Decimate = decimate
		cfg.Samples = samples
		if cmd.Flags().Changed("tmin") || cmd.Flags().Changed("tmax") {
			cfg.TimeWindow = &config.WindowConfig{Min: tMin, Max: tMax}
		}
		switch {
		case len(channels) > 0:
			cfg.Selection = config.SelectionChannels
			cfg.Channels = channels
		case asm:
			cfg.Selection = config.SelectionASM
		}
	}
	if len(args) > 0 {
		cfg.Bundle = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSource runs the builder chain a scenario config describes.
func buildSource(cfg *config.Config) (*source.Source, error) {
	b, err := corpus.Open(cfg.Bundle)
	if err != nil {
		return nil, err
	}
	if cfg.TimeWindow != nil {
		b.TimeWindow(cfg.TimeWindow.Min, cfg.TimeWindow.Max)
	}
	b.Decimate(cfg.Decimate)
	if cfg.Samples > 0 {
		b.WithSampleCount(cfg.Samples)
	}
	switch cfg.Selection {
	case config.SelectionASM:
		b.SelectAllWithASM()
	case config.SelectionChannels:
		for _, kind := range cfg.SelectedKinds() {
			b.Select(kind)
		}
	default:
		b.SelectAll()
	}
	return b.Finalize()
}

func runInfo(cmd *cobra.Command, args []string) error {
	b, err := bundle.Read(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tSAMPLES\tWIDTH")
	for _, kind := range loads.Kinds() {
		data, ok := b.Channels[kind.String()]
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\n", kind)
			continue
		}
		width := 0
		if len(data) > 0 {
			width = len(data[0])
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", kind, len(data), width)
	}
	w.Flush()

	if n := len(b.Time); n > 0 {
		fmt.Printf("\ntime axis: %d samples, %.2f s to %.2f s\n", n, b.Time[0], b.Time[n-1])
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	b, err := bundle.Read(args[0])
	if err != nil {
		return err
	}
	data, ok := b.Channels[channel]
	if !ok {
		return fmt.Errorf("channel %q not in bundle", channel)
	}
	series := make([]float64, len(data))
	for i, sample := range data {
		if component < 0 || component >= len(sample) {
			return fmt.Errorf("component %d out of range (width %d)", component, len(sample))
		}
		series[i] = sample[component]
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s[%d]", channel, component)),
	))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args)
	if err != nil {
		return err
	}
	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	tags := make([]string, 0, len(src.Tags()))
	for _, tag := range src.Tags() {
		tags = append(tags, string(tag))
	}
	run, err := store.Begin(storage.RunMetadata{
		Bundle:      cfg.Bundle,
		SamplingHz:  cfg.SamplingHz,
		Decimate:    cfg.Decimate,
		SampleCount: src.SampleCount(),
		Tags:        tags,
	})
	if err != nil {
		return err
	}

	r := runner.New(src, nil, cfg.Dt())
	r.AddObserver(run)
	steps, runErr := r.Run(context.Background())
	if err := run.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("streamed %d steps (%d channels) to %s\n", steps, len(tags), run.Dir())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args)
	if err != nil {
		return err
	}
	src, err := buildSource(cfg)
	if err != nil {
		return err
	}
	return tui.Run(src, cfg.Dt(), frameRate)
}

func runPack(cmd *cobra.Command, args []string) error {
	dir, out := args[0], args[1]

	timeAxis, err := readColumnCSV(filepath.Join(dir, "time.csv"))
	if err != nil {
		return fmt.Errorf("read time axis: %w", err)
	}

	b := &bundle.Bundle{Channels: make(map[string][][]float64), Time: timeAxis}
	for _, kind := range loads.Kinds() {
		path := filepath.Join(dir, kind.String()+".csv")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := readMatrixCSV(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", kind, err)
		}
		b.Channels[kind.String()] = data
	}
	if len(b.Channels) == 0 {
		return fmt.Errorf("no channel files found in %s", dir)
	}

	if err := bundle.Write(out, b); err != nil {
		return err
	}
	fmt.Printf("packed %d channels, %d time samples into %s\n", len(b.Channels), len(timeAxis), out)
	return nil
}

func readMatrixCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			if row[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", i, j, err)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func readColumnCSV(path string) ([]float64, error) {
	rows, err := readMatrixCSV(path)
	if err != nil {
		return nil, err
	}
	col := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d is empty", i)
		}
		col[i] = row[0]
	}
	return col, nil
}
