package usecase

import (
	"context"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	if b == nil {
		b = nopBroadcaster{}
	}
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
