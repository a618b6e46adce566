package mq

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/domain/model"
	"github.com/xh-polaris/psych-resilience/biz/domain/model/gemini"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mapper/memory"
	"golang.org/x/net/context"
)

// InteractionConsumer 消费互动记录, 补全向量后写入记忆库
type InteractionConsumer struct {
	conn   *amqp.Connection
	embed  model.EmbedApp
	finish chan struct{}
}

// NewInteractionConsumer 创建一个消费者
func NewInteractionConsumer() *InteractionConsumer {
	c := config.GetConfig()
	return &InteractionConsumer{
		conn:   getConn(),
		embed:  gemini.NewEmbedApp(c.Gemini.BaseUrl, c.Gemini.EmbedModel, c.Gemini.ApiKey),
		finish: make(chan struct{}),
	}
}

// Consume 启动消费者
func Consume() {
	consumer := NewInteractionConsumer()
	consumer.Start()
}

// Start 开始消费
func (c *InteractionConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动消息处理
	gopool.CtxGo(ctx, func() {
		c.consume(ctx)
	})
	// 处理系统信号
	gopool.CtxGo(ctx, func() {
		c.osSignalHandler(ctx)
		c.finish <- struct{}{}
	})

	<-c.finish
}

// 消费信息
func (c *InteractionConsumer) consume(ctx context.Context) {
	ch, err := c.conn.Channel()
	if err != nil {
		log.Error("get channel error:", err)
		return
	}
	defer func() { _ = ch.Close() }()
	err = ch.Qos(1, 0, false)
	if err != nil {
		log.Error("set qos error:", err)
		return
	}
	msgs, err := ch.Consume(Queue, "interaction_consumer", false, false, false, false, nil)
	if err != nil {
		log.Error("get consume error:", err)
		return
	}

	for msg := range msgs {
		if err = c.process(ctx, msg); err != nil {
			// 失败时拒绝并重试
			log.Error("处理失败，消息重新入队:", err)
			if err = msg.Nack(false, true); err != nil {
				log.Error("nack失败 ", err)
			}
		} else if err = msg.Ack(false); err != nil {
			log.Error("ack失败 ", err)
		}
	}
}

// osSignalHandler 处理os信号
func (c *InteractionConsumer) osSignalHandler(ctx context.Context) {
	log.CtxInfo(ctx, "[osSignalHandler] start")
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	osSignal := <-ch
	log.CtxInfo(ctx, "[osSignalHandler] receive signal:[%v]", osSignal)
}

// process 实际消费逻辑
func (c *InteractionConsumer) process(ctx context.Context, msg amqp.Delivery) error {
	var in dto.Interaction
	if err := json.Unmarshal(msg.Body, &in); err != nil {
		return err
	}

	// 补全向量, 失败时记录空向量照常落库, 该条仍参与模式统计
	vec, err := c.embed.Embed(ctx, in.Text)
	if err != nil {
		log.Error("embed interaction error:", err)
		vec = nil
	}

	mem := &memory.Memory{
		UserId:       in.UserId,
		Excerpt:      excerpt(in.Text),
		Sentiment:    in.Sentiment,
		StressLevel:  in.StressLevel,
		CrisisScore:  in.CrisisScore,
		Emotions:     in.Emotions,
		StrategyType: in.StrategyType,
		Embedding:    vec,
		CreateTime:   time.Unix(in.Timestamp, 0),
	}

	return c.store(ctx, mem)
}

// excerpt 只保留有限长度的原文摘录
func excerpt(text string) string {
	const max = 200
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// store 写入记忆库
func (c *InteractionConsumer) store(ctx context.Context, mem *memory.Memory) error {
	mapper := memory.GetMongoMapper()
	return mapper.Insert(ctx, mem)
}
