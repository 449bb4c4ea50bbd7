package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/querychart/internal/agent/graph/observers"
	"github.com/Chative-core-poc-v1/querychart/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/querychart/internal/agent/model"
	"github.com/Chative-core-poc-v1/querychart/internal/chart"
	logx "github.com/Chative-core-poc-v1/querychart/pkg/logger"
)

const (
	NodeToolExecutor    = "ToolExecutor"
	DefaultMaxToolCalls = 10
)

// Runner executes the tool calls requested by an assistant message and
// returns one tool message per call.
type Runner interface {
	Invoke(ctx context.Context, msg *schema.Message) ([]*schema.Message, error)
}

// Config holds everything needed to compose the chart tools graph.
type Config struct {
	Engine         *chart.Engine
	ArtifactRepo   model.ArtifactRepository
	DownloadPrefix string
	Tools          model.ToolsConfig
}

type graphRunner struct {
	runnable compose.Runnable[*schema.Message, []*schema.Message]
	maxCalls int
}

func (r *graphRunner) Invoke(ctx context.Context, msg *schema.Message) ([]*schema.Message, error) {
	if msg == nil {
		return nil, errors.New("nil assistant message")
	}
	if len(msg.ToolCalls) == 0 {
		return []*schema.Message{}, nil
	}
	if len(msg.ToolCalls) > r.maxCalls {
		logx.Warn().
			Int("requested", len(msg.ToolCalls)).
			Int("max_calls", r.maxCalls).
			Msg("tool call limit reached; dropping extra calls")
		limited := *msg
		limited.ToolCalls = msg.ToolCalls[:r.maxCalls]
		msg = &limited
	}
	return r.runnable.Invoke(ctx, msg, compose.WithCallbacks(observers.NewToolCallbacks()))
}

// BuildToolGraph compiles START -> ToolExecutor -> END around the chart tools.
func BuildToolGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("chart engine is nil")
	}
	maxCalls := cfg.Tools.MaxCalls
	if maxCalls <= 0 {
		maxCalls = DefaultMaxToolCalls
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               tools.GetChartTools(cfg.Engine, cfg.ArtifactRepo, cfg.DownloadPrefix),
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			// Gracefully handle hallucinated or malformed tool calls (e.g., empty name)
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			b, err := json.Marshal(model.ChartToolOutput{
				Error: fmt.Sprintf("unknown tool %q, available: %s", name, tools.ToolCreateChart),
			})
			return string(b), err
		},
		ToolArgumentsHandler: func(ctx context.Context, name, arguments string) (string, error) {
			return SanitizeArguments(arguments), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return nil, fmt.Errorf("failed to create tools node: %w", err)
	}

	g := compose.NewGraph[*schema.Message, []*schema.Message]()
	if err := g.AddToolsNode(NodeToolExecutor, toolsNode); err != nil {
		return nil, fmt.Errorf("add tools node: %w", err)
	}
	if err := g.AddEdge(compose.START, NodeToolExecutor); err != nil {
		return nil, fmt.Errorf("add start edge: %w", err)
	}
	if err := g.AddEdge(NodeToolExecutor, compose.END); err != nil {
		return nil, fmt.Errorf("add end edge: %w", err)
	}

	runnable, err := g.Compile(ctx, compose.WithGraphName("chart_tools"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Int("max_calls", maxCalls).Msg("Chart tools graph compiled successfully")
	return &graphRunner{runnable: runnable, maxCalls: maxCalls}, nil
}

// SanitizeArguments strips the markdown code fences models sometimes wrap
// around tool arguments. Anything else is passed through untouched.
func SanitizeArguments(arguments string) string {
	s := strings.TrimSpace(arguments)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
