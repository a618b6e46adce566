package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/domain/coach"
	"github.com/xh-polaris/psych-resilience/biz/domain/guard"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

type stubEmotion struct{}

func (stubEmotion) Analyze(_ context.Context, _ string, _ *dto.PatternSummary) (*dto.Analysis, error) {
	return &dto.Analysis{
		Sentiment:   consts.SentimentNeutral,
		StressLevel: consts.StressLow,
		Emotions:    []string{"calm"},
		Confidence:  0.9,
	}, nil
}

func (stubEmotion) Support(_ context.Context, _ string, _ *dto.Analysis) (string, error) {
	return "keep going", nil
}

func (stubEmotion) Close() error { return nil }

func newTestService(limit int) *ResilienceService {
	return &ResilienceService{
		Engine:  coach.NewEngine(stubEmotion{}, nil, nil, nil, nil, coach.Options{}),
		Limiter: guard.NewLimiter(limit, time.Minute),
	}
}

func TestResilience_Ok(t *testing.T) {
	t.Parallel()

	s := newTestService(10)
	req := &cmd.ResilienceReq{Agent: consts.AgentName, InputText: "I'm feeling stressed today"}
	resp, err := s.Resilience(context.Background(), req, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != consts.StatusSuccess {
		t.Fatalf("status=%s", resp.Status)
	}
	if resp.Message != "keep going" {
		t.Fatalf("message=%q", resp.Message)
	}
}

func TestResilience_ValidationError(t *testing.T) {
	t.Parallel()

	s := newTestService(10)
	req := &cmd.ResilienceReq{Agent: "wrong", InputText: "hello there"}
	if _, err := s.Resilience(context.Background(), req, "u1"); err != consts.ErrWrongAgent {
		t.Fatalf("err=%v", err)
	}

	// 校验失败不应计入限流配额
	s2 := newTestService(1)
	bad := &cmd.ResilienceReq{Agent: consts.AgentName, InputText: "hi"}
	_, _ = s2.Resilience(context.Background(), bad, "u1")
	ok := &cmd.ResilienceReq{Agent: consts.AgentName, InputText: "I'm feeling stressed today"}
	if _, err := s2.Resilience(context.Background(), ok, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResilience_RateLimited(t *testing.T) {
	t.Parallel()

	s := newTestService(1)
	req := &cmd.ResilienceReq{Agent: consts.AgentName, InputText: "I'm feeling stressed today"}
	if _, err := s.Resilience(context.Background(), req, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.Resilience(context.Background(), req, "u1")
	var rl *consts.RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("err=%v", err)
	}
	if rl.RetryAfter < time.Second {
		t.Fatalf("retryAfter=%v", rl.RetryAfter)
	}

	// 其他用户不受影响
	if _, err := s.Resilience(context.Background(), req, "u2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestService(1)
	h := s.Health()
	if h.Status != "ok" || h.Agent != consts.AgentName || h.Version != consts.AgentVersion {
		t.Fatalf("health=%+v", h)
	}
}
