package tools

import (
	"context"
	"fmt"

	"github.com/Chative-core-poc-v1/querychart/internal/agent/model"
	"github.com/Chative-core-poc-v1/querychart/internal/chart"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const (
	ToolCreateChart = "create_chart"
)

// GetChartTools returns the tools exposed to the response model. repo may be
// nil, in which case produced artifacts are not indexed.
func GetChartTools(engine *chart.Engine, repo model.ArtifactRepository, downloadPrefix string) []tool.BaseTool {
	return []tool.BaseTool{
		NewCreateChartTool(engine, repo, downloadPrefix),
	}
}

// GetToolInfos collects the ToolInfo of every tool, for binding to a chat model.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
