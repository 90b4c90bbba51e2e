package manager

import (
	"context"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/player"
)

// Play builds the embed link for req.
func (m MediaManager) Play(ctx context.Context, req player.Request) (string, error) {
	link, err := m.linker.Build(req)
	if err != nil {
		logger.FromCtx(ctx).Debugw("failed to build play link", "type", req.Type, "error", err)
		return "", err
	}
	return link, nil
}
