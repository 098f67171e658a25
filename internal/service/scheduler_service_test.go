package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/scheduler"
	"github.com/popeskul/outreach-engine/internal/service"
	"github.com/popeskul/outreach-engine/internal/service/mocks"
)

func newSchedulerService(t *testing.T, ctrl *gomock.Controller) (service.SchedulerService, chan struct{}, chan struct{}) {
	t.Helper()

	followUps := mocks.NewMockFollowUpService(ctrl)
	replies := mocks.NewMockReplyService(ctrl)

	swept := make(chan struct{}, 16)
	imported := make(chan struct{}, 16)
	followUps.EXPECT().ProcessDue(gomock.Any(), t0).DoAndReturn(func(context.Context, time.Time) (*service.SweepResult, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return &service.SweepResult{}, nil
	}).AnyTimes()
	replies.EXPECT().ImportAll(gomock.Any()).DoAndReturn(func(context.Context) (*service.ImportResult, error) {
		select {
		case imported <- struct{}{}:
		default:
		}
		return &service.ImportResult{}, nil
	}).AnyTimes()

	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{
			SweepIntervalSeconds:  60,
			ImportIntervalMinutes: 15,
		},
	}

	svc := service.NewSchedulerService(cfg, followUps, replies, zap.NewNop(), service.WithClock(func() time.Time { return t0 }))
	return svc, swept, imported
}

func TestSchedulerService_StartRunsBothJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, swept, imported := newSchedulerService(t, ctrl)

	assert.False(t, svc.IsRunning())
	require.NoError(t, svc.Start())
	assert.True(t, svc.IsRunning())

	for name, ch := range map[string]chan struct{}{"sweep": swept, "import": imported} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("%s job did not run on start", name)
		}
	}

	require.NoError(t, svc.Stop())
	assert.False(t, svc.IsRunning())
}

func TestSchedulerService_StartTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newSchedulerService(t, ctrl)

	require.NoError(t, svc.Start())
	defer func() { _ = svc.Stop() }()

	err := svc.Start()
	assert.ErrorIs(t, err, scheduler.ErrSchedulerAlreadyRunning)
	assert.True(t, svc.IsRunning())
}

func TestSchedulerService_StopWithoutStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newSchedulerService(t, ctrl)

	err := svc.Stop()
	assert.ErrorIs(t, err, scheduler.ErrSchedulerNotRunning)
}
