package decks

import (
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks/cache"
	"github.com/flanksource/decks/formatters"
	"github.com/flanksource/decks/task"
	"github.com/spf13/pflag"
)

type AllFlags struct {
	task.ManagerOptions
	formatters.FormatOptions
	CacheOptions
	BuildOptions
	logger.Flags
}

type CacheOptions struct {
	CacheTTL time.Duration // Cache TTL for PDF extractions
	NoCache  bool          // Disable caching
	CacheDB  string        // Database file, ~/.cache/decks.db when empty
}

// Config returns the cache configuration these options describe
func (c CacheOptions) Config() cache.Config {
	return cache.Config{DBPath: c.CacheDB, TTL: c.CacheTTL, NoCache: c.NoCache}
}

type BuildOptions struct {
	OutDir     string // Directory presentations are written to
	File       string // YAML deck definition built instead of the catalog
	Verify     bool   // Reopen every written presentation and compare it
	Seed       int64  // Seed for generated sample figures
	PublishDir string // Directory outputs are copied to after a build
	GCSBucket  string // Bucket outputs are uploaded to after a build
	GCSPrefix  string // Object prefix inside GCSBucket
}

var Flags = AllFlags{
	ManagerOptions: *task.DefaultManagerOptions(),
	FormatOptions:  formatters.FormatOptions{},
	CacheOptions: CacheOptions{
		CacheTTL: 30 * 24 * time.Hour,
	},
	BuildOptions: BuildOptions{
		OutDir: ".",
		Verify: true,
	},
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds every global flag to a pflag set (for Cobra)
func BindAllFlags(flags *pflag.FlagSet) AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	task.BindManagerPFlags(flags, &Flags.ManagerOptions)
	formatters.BindPFlags(flags, &Flags.FormatOptions)

	flags.DurationVar(&Flags.CacheOptions.CacheTTL, "cache-ttl", Flags.CacheOptions.CacheTTL, "Cache TTL for PDF extractions (0 = never expire)")
	flags.BoolVar(&Flags.CacheOptions.NoCache, "no-cache", false, "Disable the PDF extraction cache")
	flags.StringVar(&Flags.CacheOptions.CacheDB, "cache-db", "", "Cache database (default ~/.cache/decks.db)")

	flags.StringVar(&Flags.BuildOptions.OutDir, "out-dir", ".", "Directory presentations are written to")
	flags.StringVarP(&Flags.BuildOptions.File, "file", "f", "", "Build a deck from this YAML definition instead of the catalog")
	flags.Int64Var(&Flags.BuildOptions.Seed, "seed", 0, "Seed for generated sample figures (0 = fixed default)")
	flags.StringVar(&Flags.BuildOptions.PublishDir, "publish-dir", "", "Copy built presentations and a manifest to this directory")
	flags.StringVar(&Flags.BuildOptions.GCSBucket, "gcs-bucket", "", "Upload built presentations and a manifest to this GCS bucket")
	flags.StringVar(&Flags.BuildOptions.GCSPrefix, "gcs-prefix", "", "Object prefix inside --gcs-bucket")

	return Flags
}

func (a AllFlags) String() string {
	s, _ := formatters.NewFormatManager(a.FormatOptions).FormatValue("yaml", a)
	return s
}

// UseFlags applies the parsed flags: it configures logging and shares the
// colour setting with the progress display
func (a *AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	a.ManagerOptions.NoColor = a.FormatOptions.NoColor
	logger.Debugf("Using flags: %s", a)
}
