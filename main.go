// Package main provides the entry point for the castkit CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/castkit/castkit/internal/budget"
	"github.com/castkit/castkit/internal/cache"
	"github.com/castkit/castkit/internal/storage"
	"github.com/castkit/castkit/speech"
	"github.com/castkit/castkit/speech/providers"
	"github.com/castkit/castkit/summarize"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string

	speakVoice    string
	speakProvider string
	speakFormat   string
	speakQuality  string
	speakSpeed    float64

	planQuality string
	planForce   bool

	rootCmd = &cobra.Command{
		Use:           "castkit",
		Short:         "Cost-aware speech generation for content pipelines",
		Long:          "\nCastkit decides whether generating audio or a summary is worth paying for,\nreuses cached artifacts when it is not, and keeps spend inside configured ceilings.",
		SilenceErrors: false,
		SilenceUsage:  true,
	}

	speakCmd = &cobra.Command{
		Use:   "speak [SOURCE|TEXT]",
		Short: "Generate speech audio from text",
		Long:  "\nGenerate speech audio from a file, stdin (-), or a literal argument.\nCached audio is reused for free when the same content was generated before.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSpeak,
	}

	planCmd = &cobra.Command{
		Use:   "plan [SOURCE|TEXT]",
		Short: "Analyze text complexity and recommend a processing tier",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlan,
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show audio cache statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	voicesCmd = &cobra.Command{
		Use:   "voices",
		Short: "List supported voices",
		Args:  cobra.NoArgs,
		RunE:  runVoices,
	}
)

// readText resolves the text to process: stdin when piped or when the
// argument is "-", the file's contents when the argument names a file,
// and the argument itself otherwise.
func readText(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("unable to read from stdin: %w", err)
		}
		return string(b), nil
	}

	if st, err := os.Stat(args[0]); err == nil && !st.IsDir() {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("unable to open file: %w", err)
		}
		return string(b), nil
	}

	return args[0], nil
}

// buildEngine assembles the speech engine: blob storage, disk-backed
// audio cache, and the OpenAI adapter when a key is configured.
func buildEngine(cmd *cobra.Command, cfg speech.Config) (*speech.Engine, func(), error) {
	var blobs storage.BlobStore

	minioCfg, err := env.ParseAs[storage.MinioConfig]()
	if err == nil && minioCfg.Endpoint != "" {
		store, err := storage.NewMinioStore(cmd.Context(), minioCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to blob storage: %w", err)
		}
		blobs = store
	} else {
		log.Warn("no blob storage configured, generated audio will not outlive the process")
		blobs = storage.NewMemoryStore()
	}

	engine, err := speech.NewEngine(cfg, blobs)
	if err != nil {
		return nil, nil, err
	}

	if cfg.EnableCaching {
		persist, err := cache.NewDiskPersistence[speech.AudioArtifact](viper.GetString("cache.audio_path"), "audio")
		if err != nil {
			log.Warn("audio cache persistence unavailable", "error", err)
		} else if err := engine.AudioCache().SetPersistence(persist); err != nil {
			log.Warn("could not restore audio cache", "path", persist.Path(), "error", err)
		}
	}

	if cfg.OpenAI.APIKey != "" {
		provider, err := providers.NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, nil, err
		}
		engine.RegisterProvider(provider)
	}

	cleanup := func() {
		if err := engine.Close(); err != nil {
			log.Warn("could not flush audio cache", "error", err)
		}
	}
	return engine, cleanup, nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text, err := readText(args)
	if err != nil {
		return err
	}

	cfg, err := speech.LoadConfigFromViper()
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.GenerateAudio(cmd.Context(), speech.Request{
		Text:     text,
		Voice:    speakVoice,
		Provider: speakProvider,
		Format:   speech.Format(speakFormat),
		Quality:  speech.Quality(speakQuality),
		Speed:    speakSpeed,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.AudioURL)
	fmt.Fprintf(os.Stderr, "  voice:    %s (%s)\n", result.Voice, result.Provider)
	fmt.Fprintf(os.Stderr, "  size:     %s\n", humanize.Bytes(uint64(result.SizeBytes)))
	fmt.Fprintf(os.Stderr, "  duration: %ds\n", result.DurationSeconds)
	if result.Cached {
		fmt.Fprintln(os.Stderr, "  cost:     $0.00 (cached)")
	} else {
		fmt.Fprintf(os.Stderr, "  cost:     $%.4f\n", result.Cost)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	text, err := readText(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to analyze: text is empty")
	}

	limits, err := env.ParseAs[budget.Limits]()
	if err != nil {
		return fmt.Errorf("unable to load budget limits: %w", err)
	}

	optimizer := summarize.NewOptimizer(budget.NewLedger(limits))
	analysis := summarize.AnalyzeComplexity(text)
	decision := optimizer.OptimizeProcessing(text, summarize.Options{
		Quality:      summarize.QualityPreference(planQuality),
		ForceProcess: planForce,
	})

	fmt.Printf("length:      %s characters\n", humanize.Comma(int64(len(text))))
	fmt.Printf("complexity:  %d/10 (technical %d, sentences %d, depth %d, reasoning %d)\n",
		analysis.Score,
		analysis.Factors.TechnicalTerms,
		analysis.Factors.SentenceComplexity,
		analysis.Factors.TopicDepth,
		analysis.Factors.Reasoning)
	fmt.Printf("model:       %s\n", decision.RecommendedModel)
	fmt.Printf("process:     %v (%s)\n", decision.ShouldProcess, decision.Reason)
	fmt.Printf("est. cost:   $%.4f\n", decision.EstimatedCost)
	if decision.QualityTrade != summarize.TradeNone {
		fmt.Printf("trade-off:   %s quality reduction\n", decision.QualityTrade)
	}
	return nil
}

func runStats(*cobra.Command, []string) error {
	cfg, err := speech.LoadConfigFromViper()
	if err != nil {
		return err
	}

	store := cache.NewStore[speech.AudioArtifact](cfg.CacheTTL())
	persist, err := cache.NewDiskPersistence[speech.AudioArtifact](viper.GetString("cache.audio_path"), "audio")
	if err != nil {
		return fmt.Errorf("unable to open audio cache: %w", err)
	}
	if err := store.SetPersistence(persist); err != nil {
		return fmt.Errorf("unable to read audio cache: %w", err)
	}

	var totalBytes int64
	var totalCost float64
	for _, entry := range store.Entries() {
		totalBytes += entry.Payload.SizeBytes
		totalCost += entry.Metadata.Cost
	}

	fmt.Printf("cache file:   %s\n", persist.Path())
	fmt.Printf("entries:      %d\n", store.Len())
	fmt.Printf("audio stored: %s\n", humanize.Bytes(uint64(totalBytes)))
	fmt.Printf("spend cached: $%.4f\n", totalCost)
	fmt.Printf("calls saved:  %d\n", store.Hits())
	return nil
}

func runVoices(*cobra.Command, []string) error {
	for _, v := range speech.Voices() {
		status := "available"
		if !v.Available {
			status = "unavailable"
		}
		fmt.Printf("%-12s %-10s %-8s %-12s %s\n", v.ID, v.Name, v.Gender, v.Provider, status)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))

	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "voice to use (see 'castkit voices')")
	speakCmd.Flags().StringVar(&speakProvider, "provider", "", "synthesis provider")
	speakCmd.Flags().StringVar(&speakFormat, "format", "", "audio format (mp3/wav/flac/opus)")
	speakCmd.Flags().StringVar(&speakQuality, "quality", "", "quality tier (low/medium/high/hd)")
	speakCmd.Flags().Float64Var(&speakSpeed, "speed", 0, "playback speed (0.25 to 4.0)")

	planCmd.Flags().StringVar(&planQuality, "quality", "", "quality preference (basic/standard/premium)")
	planCmd.Flags().BoolVar(&planForce, "force", false, "proceed even when the budget is exhausted")

	speech.SetDefaults()
	viper.SetDefault("debug", false)
	viper.SetDefault("cache.audio_path", "")

	rootCmd.AddCommand(speakCmd, planCmd, statsCmd, voicesCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "castkit")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "castkit")}, dirs...)
	}

	if c := os.Getenv("CASTKIT_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("castkit")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("castkit")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "castkit.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
