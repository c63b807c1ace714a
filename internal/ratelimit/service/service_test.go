package service

//go:generate mockgen -source=../ports/ports.go -destination=mocks/mocks.go -package=mocks BucketStore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"loanrisk/internal/ratelimit/metrics"
	"loanrisk/internal/ratelimit/models"
	"loanrisk/internal/ratelimit/service/mocks"
	"loanrisk/internal/ratelimit/store/bucket"
	"loanrisk/pkg/platform/circuit"
)

const testIP = "198.51.100.20"

var errRedisDown = errors.New("dial tcp: connection refused")

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	primary  *mocks.MockBucketStore
	fallback *bucket.InMemoryBucketStore
	metrics  *metrics.Metrics
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.ctx = context.Background()
	s.primary = mocks.NewMockBucketStore(ctrl)
	s.fallback = bucket.NewInMemoryBucketStore()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())

	var err error
	s.service, err = New(s.primary,
		WithLimit(5, time.Minute),
		WithFallback(s.fallback),
		WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(2))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func allowed(remaining int) *models.Result {
	return &models.Result{Allowed: true, Limit: 5, Remaining: remaining, ResetAt: time.Now().Add(time.Minute)}
}

func (s *ServiceSuite) TestNewRequiresStore() {
	_, err := New(nil)
	s.Error(err)
}

func (s *ServiceSuite) TestDefaults() {
	svc, err := New(bucket.NewInMemoryBucketStore())
	s.Require().NoError(err)
	limit, window := svc.Limit()
	s.Equal(60, limit)
	s.Equal(time.Minute, window)
}

func (s *ServiceSuite) TestCheckIP_UsesPrimary() {
	s.primary.EXPECT().Allow(gomock.Any(), "rl:ip:"+testIP, 5, time.Minute).Return(allowed(4), nil)

	decision, err := s.service.CheckIP(s.ctx, testIP)
	s.Require().NoError(err)
	s.True(decision.Allowed)
	s.False(decision.Degraded)
	s.Equal(4, decision.Remaining)
}

func (s *ServiceSuite) TestCheckIP_CountsRejections() {
	s.primary.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.Result{Allowed: false, Limit: 5, RetryAfter: 12}, nil)

	decision, err := s.service.CheckIP(s.ctx, testIP)
	s.Require().NoError(err)
	s.False(decision.Allowed)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.Rejections))
}

func (s *ServiceSuite) TestCheckIP_FailureBelowThresholdIsReturned() {
	s.primary.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errRedisDown)

	_, err := s.service.CheckIP(s.ctx, testIP)
	s.ErrorIs(err, errRedisDown)
}

func (s *ServiceSuite) TestCheckIP_FallsBackWhileCircuitOpen() {
	s.primary.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errRedisDown).Times(2)

	_, err := s.service.CheckIP(s.ctx, testIP)
	s.Require().Error(err)

	decision, err := s.service.CheckIP(s.ctx, testIP)
	s.Require().NoError(err, "second failure opens the circuit and uses the fallback")
	s.True(decision.Degraded)
	s.True(decision.Allowed)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.Degraded))

	s.Run("recovery needs consecutive successes", func() {
		s.primary.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(allowed(4), nil).Times(2)

		decision, err := s.service.CheckIP(s.ctx, testIP)
		s.Require().NoError(err)
		s.True(decision.Degraded, "one success is not enough to close")

		decision, err = s.service.CheckIP(s.ctx, testIP)
		s.Require().NoError(err)
		s.False(decision.Degraded)
		s.Equal(0.0, promtest.ToFloat64(s.metrics.Degraded))
	})
}

func (s *ServiceSuite) TestCheckIP_FallbackEnforcesLimit() {
	s.primary.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errRedisDown).AnyTimes()

	var last *models.Decision
	for range 7 {
		last, _ = s.service.CheckIP(s.ctx, testIP)
	}
	s.Require().NotNil(last)
	s.True(last.Degraded)
	s.False(last.Allowed, "fallback still applies the configured limit")
}
