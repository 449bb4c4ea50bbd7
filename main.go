package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cloudwego/eino/schema"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Chative-core-poc-v1/querychart/internal/agent/graph"
	"github.com/Chative-core-poc-v1/querychart/internal/agent/model"
	"github.com/Chative-core-poc-v1/querychart/internal/agent/repo"
	"github.com/Chative-core-poc-v1/querychart/internal/chart"
	"github.com/Chative-core-poc-v1/querychart/internal/core"
	logx "github.com/Chative-core-poc-v1/querychart/pkg/logger"
	pkgredis "github.com/Chative-core-poc-v1/querychart/pkg/redis"
)

// AppConfig defines all configurable parameters for the chart demo,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string           `envconfig:"LOG_LEVEL"`

	// Infrastructure; the artifact index is skipped when REDIS_URL is empty
	RedisURL string          `envconfig:"REDIS_URL"`
	Redis    pkgredis.Config `ignored:"true"`

	Chart    model.ChartConfig
	Artifact model.ArtifactConfig
	Tools    model.ToolsConfig
}

func main() {
	ctx := context.Background()
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}
	logx.Init(logx.LoggerOpts{Environment: envCfg.Environment, Level: envCfg.LogLevel})

	// The export directory belongs to the host; the engine only appends to it.
	if err := os.MkdirAll(envCfg.Chart.ExportDir, 0o755); err != nil {
		logx.Fatal().Err(err).Str("dir", envCfg.Chart.ExportDir).Msg("Failed to create export directory")
	}
	engine, err := chart.NewEngine(envCfg.Chart.EngineOptions())
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise chart engine")
	}

	var artifacts model.ArtifactRepository
	if envCfg.RedisURL != "" {
		if err := envconfig.Process("redis", &envCfg.Redis); err != nil {
			logx.Fatal().Err(err).Msg("Failed to process redis config")
		}
		rdb, err := envCfg.Redis.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		artifacts = repo.NewRedisArtifactRepository(rdb, envCfg.Artifact)
		logx.Info().Msg("Connected to Redis successfully")
	}

	runner, err := graph.BuildToolGraph(ctx, graph.Config{
		Engine:         engine,
		ArtifactRepo:   artifacts,
		DownloadPrefix: envCfg.Chart.DownloadPrefix,
		Tools:          envCfg.Tools,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build tools graph")
	}

	// Tool calls as a response model would emit them.
	testCalls := []struct {
		description string
		arguments   string
	}{
		{"Pie chart from labels and values", `{"chart_type":"pie","chart_data":{"labels":["A","B"],"values":[10,20]}}`},
		{"Pie chart without labels", `{"chart_type":"pie","chart_data":{"values":[1,2,3]}}`},
		{"Bar chart from x_labels/y_values", `{"chart_type":"bar","chart_data":{"x_labels":["Q1","Q2"],"y_values":[5,10]}}`},
		{"Bar chart from mappings", `{"chart_type":"bar","chart_data":{"data":[{"name":"A","value":1},{"name":"B","value":2}]}}`},
		{"Bar chart from bare values", `{"chart_type":"bar","chart_data":{"data":[1,2,3]}}`},
		{"Line chart with a non-numeric value", `{"chart_type":"line","chart_data":{"x_values":[1,2],"y_values":[1,"x"]}}`},
		{"Histogram with zero bins", `{"chart_type":"histogram","chart_data":{"data":[1,1,2,2,2,3],"bins":0}}`},
	}

	for i, tc := range testCalls {
		fmt.Printf("\nTest %d: %s\n", i+1, tc.description)
		msg := schema.AssistantMessage("", []schema.ToolCall{{
			ID:       fmt.Sprintf("call-%d", i+1),
			Function: schema.FunctionCall{Name: "create_chart", Arguments: tc.arguments},
		}})
		results, err := runner.Invoke(ctx, msg)
		if err != nil {
			logx.Error().Err(err).Int("test", i+1).Msg("Tool call failed")
			continue
		}
		for _, r := range results {
			fmt.Printf("Result: %s\n", r.Content)
		}
	}

	if artifacts != nil {
		recent, err := artifacts.ListRecent(ctx, 10)
		if err != nil {
			logx.Error().Err(err).Msg("Failed to list recent artifacts")
			return
		}
		for _, rec := range recent {
			fmt.Printf("Indexed: %s (%s, %d points) %s\n", rec.Filename, rec.Kind, rec.Points, rec.DownloadURL)
		}
	}
}
