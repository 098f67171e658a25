package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/popeskul/outreach-engine/internal/api"
	"github.com/popeskul/outreach-engine/internal/repository"
)

type healthService struct {
	repo             repository.Repository
	redisClient      *redis.Client
	schedulerService SchedulerService
	breakers         []BreakerReporter
}

func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	schedulerService SchedulerService,
	breakers ...BreakerReporter,
) HealthService {
	return &healthService{
		repo:             repo,
		redisClient:      redisClient,
		schedulerService: schedulerService,
		breakers:         breakers,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status:          api.Healthy,
		CircuitBreakers: make(map[string]api.CircuitBreakerState, len(s.breakers)),
	}

	if s.schedulerService.IsRunning() {
		status.SchedulerStatus = api.HealthResponseSchedulerStatusRunning
	} else {
		status.SchedulerStatus = api.HealthResponseSchedulerStatusStopped
	}

	status.DatabaseStatus = s.checkDatabaseHealth()
	status.RedisStatus = s.checkRedisHealth()

	anyOpen := false
	for _, b := range s.breakers {
		state := b.State()
		status.CircuitBreakers[b.Name()] = state
		if state == api.Open {
			anyOpen = true
		}
	}

	// Storage outages are fatal, an open breaker only degrades.
	switch {
	case status.DatabaseStatus != api.HealthResponseDatabaseStatusConnected,
		status.RedisStatus != api.HealthResponseRedisStatusConnected:
		status.Status = api.Unhealthy
	case anyOpen:
		status.Status = api.Degraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth() api.HealthResponseDatabaseStatus {
	if err := s.repo.Ping(); err != nil {
		return api.HealthResponseDatabaseStatusDisconnected
	}
	return api.HealthResponseDatabaseStatusConnected
}

func (s *healthService) checkRedisHealth() api.HealthResponseRedisStatus {
	if s.redisClient == nil {
		return api.HealthResponseRedisStatusDisconnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return api.HealthResponseRedisStatusDisconnected
	}

	return api.HealthResponseRedisStatusConnected
}
