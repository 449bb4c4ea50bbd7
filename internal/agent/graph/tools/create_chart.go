package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/querychart/internal/agent/model"
	"github.com/Chative-core-poc-v1/querychart/internal/chart"
	errx "github.com/Chative-core-poc-v1/querychart/internal/core/error"
	logx "github.com/Chative-core-poc-v1/querychart/pkg/logger"
)

// ===================================
// Create Chart Tool
// ===================================

const chartDataDesc = `Chart configuration object. Fields depend on chart_type:
- pie: {"labels": [...], "values": [numbers], "colors": [optional color names or #hex], "title": optional}
- bar: one of {"x_labels": [...], "y_values": [numbers]}, {"labels": [...], "values": [numbers]},
  or {"data": [["A", 10], ...] | [{"name": "A", "value": 10}, ...] | [10, 20, ...]};
  optional "color", "x_label", "y_label", "title"
- line: {"x_values": [numbers], "y_values": [numbers], "x_label", "y_label", "title" optional}
- histogram: {"data": [numbers], "bins": optional positive integer (default 10), "x_label", "title" optional}`

// CreateChartTool renders query results as a chart image through the chart engine.
// It decodes its own arguments so the key order of "data" mappings survives.
type CreateChartTool struct {
	engine         *chart.Engine
	repo           model.ArtifactRepository
	downloadPrefix string
}

func NewCreateChartTool(engine *chart.Engine, repo model.ArtifactRepository, downloadPrefix string) *CreateChartTool {
	if downloadPrefix == "" {
		downloadPrefix = "/downloads"
	}
	return &CreateChartTool{engine: engine, repo: repo, downloadPrefix: downloadPrefix}
}

func (t *CreateChartTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	kinds := make([]string, 0, len(chart.Kinds))
	for _, k := range chart.Kinds {
		kinds = append(kinds, k.String())
	}
	return &schema.ToolInfo{
		Name: ToolCreateChart,
		Desc: "Create a chart image (pie, bar, line or histogram) from query results. Returns the image filename and its download URL. If the result has success=false, fix chart_data according to the error and call the tool again.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"chart_type": {
				Type:     schema.String,
				Desc:     "Type of chart to draw.",
				Enum:     kinds,
				Required: true,
			},
			"chart_data": {
				Type:     schema.Object,
				Desc:     chartDataDesc,
				Required: true,
			},
		}),
	}, nil
}

func (t *CreateChartTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in, err := DecodeChartArguments([]byte(argumentsInJSON))
	if err != nil {
		logx.Warn().Err(err).Str("tool", ToolCreateChart).Msg("malformed tool arguments")
		return "", errx.WrapToolArguments(err)
	}

	kind, err := chart.ParseKind(in.ChartType)
	if err != nil {
		return t.reject(err)
	}
	req, err := chart.ParseRequest(in.ChartData)
	if err != nil {
		return t.reject(err)
	}

	artifact, err := t.engine.CreateChart(ctx, req, kind)
	if err != nil {
		if chart.IsValidation(err) {
			return t.reject(err)
		}
		return "", errx.WrapChart(err)
	}

	link := DownloadURL(t.downloadPrefix, artifact.Filename)
	t.record(ctx, artifact, link)

	return encode(model.ChartToolOutput{
		Success:     true,
		Filename:    artifact.Filename,
		DownloadURL: link,
		Message:     fmt.Sprintf("Chart image created successfully: %s (Download: %s)", artifact.Filename, link),
	})
}

// reject reports a validation failure to the model as a regular tool result
// so it can correct the arguments and retry.
func (t *CreateChartTool) reject(err error) (string, error) {
	logx.Info().Err(err).Str("tool", ToolCreateChart).Str("error_kind", string(chart.KindOf(err))).Msg("chart request rejected")
	return encode(model.ChartToolOutput{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: string(chart.KindOf(err)),
	})
}

func (t *CreateChartTool) record(ctx context.Context, a *chart.Artifact, link string) {
	if t.repo == nil {
		return
	}
	err := t.repo.Record(ctx, model.ArtifactRecord{
		Filename:    a.Filename,
		Kind:        a.Kind.String(),
		Title:       a.Title,
		Points:      a.Points,
		DownloadURL: link,
		CreatedAt:   a.CreatedAt,
	})
	if err != nil {
		logx.Warn().Err(err).Str("filename", a.Filename).Msg("failed to index chart artifact")
	}
}

// DecodeChartArguments extracts chart_type, verbatim, and the raw chart_data
// object. chart_data may also arrive as a JSON-encoded string.
func DecodeChartArguments(args []byte) (*model.ChartToolInput, error) {
	args = bytes.TrimSpace(args)
	if len(args) == 0 || args[0] != '{' {
		return nil, errors.New("arguments must be a JSON object")
	}

	in := &model.ChartToolInput{}
	chartType, err := jsonparser.GetString(args, "chart_type")
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, fmt.Errorf("chart_type: %w", err)
	}
	in.ChartType = chartType

	raw, dt, _, err := jsonparser.Get(args, "chart_data")
	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError):
		return in, nil
	case err != nil:
		return nil, fmt.Errorf("chart_data: %w", err)
	}
	switch dt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, fmt.Errorf("chart_data: %w", err)
		}
		in.ChartData = []byte(s)
	default:
		in.ChartData = raw
	}
	return in, nil
}

// DownloadURL joins the public download prefix and an artifact filename.
func DownloadURL(prefix, filename string) string {
	return strings.TrimRight(prefix, "/") + "/" + url.PathEscape(filename)
}

func encode(out model.ChartToolOutput) (string, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal tool output: %w", err)
	}
	return string(b), nil
}

var _ tool.InvokableTool = (*CreateChartTool)(nil)
