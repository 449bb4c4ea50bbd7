package model

import (
	"time"

	"github.com/Chative-core-poc-v1/querychart/internal/chart"
)

// ================ Config ================
type ChartConfig struct {
	ExportDir            string  `envconfig:"CHART_EXPORT_DIR" default:"exports"`
	DPI                  int     `envconfig:"CHART_DPI" default:"300"`
	WidthInches          float64 `envconfig:"CHART_WIDTH_INCHES" default:"12"`
	HeightInches         float64 `envconfig:"CHART_HEIGHT_INCHES" default:"8"`
	MaxConcurrentRenders int     `envconfig:"CHART_MAX_CONCURRENT_RENDERS" default:"4"`
	DownloadPrefix       string  `envconfig:"CHART_DOWNLOAD_PREFIX" default:"/downloads"`
}

// EngineOptions converts the env-bound config into chart engine options.
func (c ChartConfig) EngineOptions() chart.Options {
	return chart.Options{
		ExportDir:            c.ExportDir,
		DPI:                  c.DPI,
		WidthInches:          c.WidthInches,
		HeightInches:         c.HeightInches,
		MaxConcurrentRenders: c.MaxConcurrentRenders,
	}
}

type ArtifactConfig struct {
	TTL       time.Duration `envconfig:"ARTIFACT_TTL" default:"24h"`
	MaxRecent int           `envconfig:"ARTIFACT_MAX_RECENT" default:"100"`
}

type ToolsConfig struct {
	MaxCalls int `envconfig:"TOOLS_MAX_CALLS" default:"10"`
}
