package api

import (
	"context"

	"github.com/lysyi3m/contest-comb/app/contest"
	"github.com/lysyi3m/contest-comb/app/pipeline"
	"github.com/lysyi3m/contest-comb/app/platforms"
	"github.com/lysyi3m/contest-comb/app/render"
)

type PipelineInterface interface {
	Run(ctx context.Context, opts pipeline.Options) ([]contest.Contest, error)
}

var _ PipelineInterface = (*pipeline.Pipeline)(nil)

type Handler struct {
	pipeline        PipelineInterface
	renderer        *render.Renderer
	platformsConfig *platforms.Config
	sourceCount     int
}
