package coach

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/uuid"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/domain"
	"github.com/xh-polaris/psych-resilience/biz/domain/guard"
	"github.com/xh-polaris/psych-resilience/biz/domain/model"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mapper/memory"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/util"
)

// MemoryStore 记忆库读取面, mongo mapper实现, 测试注入假实现
type MemoryStore interface {
	FindSimilar(ctx context.Context, userId string, embedding []float64, k int) ([]*memory.Memory, error)
	FindRecent(ctx context.Context, userId string, limit int) ([]*memory.Memory, error)
}

// Recorder 互动记录投递面, MQ生产者实现
type Recorder interface {
	Produce(ctx context.Context, in *dto.Interaction) error
}

// StrategyMarker 最近策略标记, redis实现
type StrategyMarker interface {
	SetLastStrategy(userId, strategy string) error
	LastStrategy(userId string) (string, error)
}

// Options 管线的可调参数
type Options struct {
	CrisisThreshold float64
	MemoryTopK      int
	PatternWindow   int
	MessageMaxLen   int
	Timeout         time.Duration
}

// Engine 是处理一次求助请求的核心管线
// 固定顺序的节点序列, 只有危机分流一个条件分支;
// 外部依赖全部显式注入, 不持有跨请求可变状态
type Engine struct {
	emotion model.EmotionApp
	embed   model.EmbedApp
	store   MemoryStore
	rec     Recorder
	marker  StrategyMarker
	opts    Options
}

// NewEngine 构造管线, store/rec/marker/embed允许为nil, 对应能力整体降级
func NewEngine(emotion model.EmotionApp, embed model.EmbedApp, store MemoryStore, rec Recorder, marker StrategyMarker, opts Options) *Engine {
	if opts.CrisisThreshold <= 0 {
		opts.CrisisThreshold = 0.7
	}
	if opts.MemoryTopK <= 0 {
		opts.MemoryTopK = 3
	}
	if opts.PatternWindow <= 0 {
		opts.PatternWindow = 10
	}
	if opts.MessageMaxLen <= 0 {
		opts.MessageMaxLen = 500
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Engine{
		emotion: emotion,
		embed:   embed,
		store:   store,
		rec:     rec,
		marker:  marker,
		opts:    opts,
	}
}

// stage 管线节点
type stage int

const (
	stageRetrieve stage = iota
	stageAnalyze
	stageCrisis
	stageBranch
	stageCrisisResponse
	stageRecommend
	stageStore
	stageFormat
	stageDone
)

// run 单次执行的中间状态
type run struct {
	userId   string
	text     string
	summary  *dto.PatternSummary
	analysis *dto.Analysis
	// degraded 分析服务是否不可用
	degraded       bool
	crisisScore    float64
	recommendation *dto.Recommendation
	message        string
	resp           *dto.ResilienceResp
}

// Run 执行一次完整管线, 永远返回结构完整的信封
// 记忆读写失败只降级不报错, 分析失败以error_变体诚实透出
func (e *Engine) Run(ctx context.Context, userId, text string) *dto.ResilienceResp {
	if userId == "" {
		userId = guard.AnonymousId
	}
	r := &run{userId: userId, text: text}

	for st := stageRetrieve; st != stageDone; {
		st = e.step(ctx, st, r)
	}
	return r.resp
}

// step 状态转移函数, stageBranch是唯一的条件边
func (e *Engine) step(ctx context.Context, st stage, r *run) stage {
	switch st {
	case stageRetrieve:
		e.retrieve(ctx, r)
		return stageAnalyze
	case stageAnalyze:
		e.analyze(ctx, r)
		return stageCrisis
	case stageCrisis:
		r.crisisScore = CrisisScore(r.analysis, r.degraded, r.text)
		return stageBranch
	case stageBranch:
		if r.crisisScore >= e.opts.CrisisThreshold {
			return stageCrisisResponse
		}
		return stageRecommend
	case stageCrisisResponse:
		e.crisisResponse(ctx, r)
		return stageStore
	case stageRecommend:
		e.recommend(ctx, r)
		return stageStore
	case stageStore:
		e.storeInteraction(ctx, r)
		return stageFormat
	case stageFormat:
		r.resp = Format(r.analysis, r.crisisScore, r.recommendation, r.message, e.opts.MessageMaxLen)
		return stageDone
	default:
		return stageDone
	}
}

// retrieve 相似记忆检索并聚合模式摘要
// 记忆库/向量服务不可用时退化成空摘要, 不中断管线
func (e *Engine) retrieve(ctx context.Context, r *run) {
	r.summary = &dto.PatternSummary{AvgStress: consts.StressMedium, RecurringEmotions: []string{}}
	if e.store == nil {
		return
	}

	var records []*memory.Memory
	var err error
	if e.embed != nil {
		if vec, embedErr := e.embed.Embed(ctx, r.text); embedErr == nil {
			records, err = e.store.FindSimilar(ctx, r.userId, vec, e.opts.MemoryTopK)
		} else {
			log.CtxError(ctx, "embed degraded: %v", embedErr)
		}
	}
	// 向量不可用时退一步用最近记录, 记忆上下文仍然可用
	if len(records) == 0 && err == nil {
		records, err = e.store.FindRecent(ctx, r.userId, e.opts.PatternWindow)
	}
	if err != nil {
		log.CtxError(ctx, "memory retrieval degraded: %v", err)
		return
	}

	r.summary = domain.BuildPatternSummary(records)

	// 最近策略优先取实时标记, 记忆落库是异步的
	if e.marker != nil {
		if last, err := e.marker.LastStrategy(r.userId); err == nil && last != "" {
			r.summary.LastStrategy = last
		}
	}
}

// analyze 调用情绪分析模型
// 失败时不得伪造neutral结果, 以error_变体继续走完管线
func (e *Engine) analyze(ctx context.Context, r *run) {
	tctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	analysis, err := e.emotion.Analyze(tctx, r.text, r.summary)
	if err == nil {
		r.analysis = analysis
		return
	}

	log.CtxError(ctx, "emotion analysis failed: %v", err)
	r.degraded = true
	r.analysis = &dto.Analysis{
		StressLevel: consts.StressUnavailable,
		Confidence:  0,
		Reasoning:   "emotion analysis service unavailable",
	}
	if errors.Is(err, model.ErrQuotaExceeded) {
		r.analysis.Sentiment = consts.SentimentQuotaExceeded
		r.analysis.Emotions = []string{consts.EmotionTagQuotaExceeded}
	} else {
		r.analysis.Sentiment = consts.SentimentApiFailed
		r.analysis.Emotions = []string{consts.EmotionTagApiError}
	}
}

// crisisResponse 危机分支: 固定热线消息, 哨兵推荐, 旁路预警邮件
func (e *Engine) crisisResponse(ctx context.Context, r *run) {
	r.recommendation = crisisRecommendation()
	r.message = CrisisMessage

	// 预警邮件旁路发送, 不阻塞响应
	gopool.CtxGo(ctx, func() {
		if err := util.AlertEmail(); err != nil {
			log.Error("crisis alert email failed: ", err)
		}
	})
}

// recommend 常规分支: 策略选择 + 支持性消息
func (e *Engine) recommend(ctx context.Context, r *run) {
	r.recommendation = SelectStrategy(r.analysis, r.summary.LastStrategy)

	if r.degraded {
		// 分析降级时不再调模型生成消息, 用诚实的固定文案
		r.message = DegradedMessage
		return
	}

	tctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()
	msg, err := e.emotion.Support(tctx, r.text, r.analysis)
	if err != nil {
		log.CtxError(ctx, "support message failed: %v", err)
		msg = DefaultMessage
	}
	r.message = msg
}

// storeInteraction 投递互动记录并刷新最近策略标记, 均为尽力而为
func (e *Engine) storeInteraction(ctx context.Context, r *run) {
	if e.rec != nil {
		in := &dto.Interaction{
			Id:           uuid.NewString(),
			UserId:       r.userId,
			Text:         r.text,
			Sentiment:    r.analysis.Sentiment,
			StressLevel:  r.analysis.StressLevel,
			Emotions:     r.analysis.Emotions,
			CrisisScore:  r.crisisScore,
			StrategyType: r.recommendation.Type,
			Timestamp:    time.Now().Unix(),
		}
		if err := e.rec.Produce(ctx, in); err != nil {
			log.CtxError(ctx, "interaction produce failed: %v", err)
		}
	}

	// 危机哨兵不参与防重复
	if e.marker != nil && r.recommendation.Type != consts.StrategyCrisis {
		if err := e.marker.SetLastStrategy(r.userId, r.recommendation.Type); err != nil {
			log.CtxError(ctx, "set last strategy failed: %v", err)
		}
	}
}
