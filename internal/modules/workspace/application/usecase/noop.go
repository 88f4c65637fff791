package usecase

import (
	"context"
	"time"

	"scoutWorkspace/internal/modules/workspace/domain"
)

type nopMetrics struct{}

func (nopMetrics) FetchStarted(string) {}
func (nopMetrics) FetchCompleted(string, int, time.Duration) {}
func (nopMetrics) FetchFailed(string) {}
func (nopMetrics) FetchDiscarded(string) {}
func (nopMetrics) MutationCompleted(string, error) {}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(context.Context, *domain.Message) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.ActivityEvent) error { return nil }
