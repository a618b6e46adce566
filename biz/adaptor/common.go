package adaptor

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	hertz "github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/golang-jwt/jwt/v4"
	"github.com/xh-polaris/gopkg/util"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc/codes"
)

var _ propagation.TextMapCarrier = &headerProvider{}

type headerProvider struct {
	headers *protocol.ResponseHeader
}

// Get a value from metadata by key
func (m *headerProvider) Get(key string) string {
	return m.headers.Get(key)
}

// Set a value to metadata by k/v
func (m *headerProvider) Set(key, value string) {
	m.headers.Set(key, value)
}

// Keys Iteratively get all keys of metadata
func (m *headerProvider) Keys() []string {
	out := make([]string, 0)

	m.headers.VisitAll(func(key, value []byte) {
		out = append(out, string(key))
	})

	return out
}

// PostProcess 统一出口: 校验类400, 限流429, 其他不可预期错误一律500且只给通用文案
// 上游降级不会走到这里, 它作为数据随200信封透出
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "[%s] request=%s, resp=%s, err=%v", c.Path(), util.JSONF(req), util.JSONF(resp), err)
	b3.New().Inject(ctx, &headerProvider{headers: &c.Response.Header})

	if err == nil {
		c.JSON(hertz.StatusOK, resp)
		return
	}

	var limited *consts.RateLimitedError
	var errno *consts.Errno
	switch {
	case errors.As(err, &limited):
		c.Response.Header.Set("Retry-After", strconv.Itoa(int(limited.RetryAfter.Seconds())))
		c.JSON(hertz.StatusTooManyRequests, errEnvelope(limited.Error()))
	case errors.As(err, &errno) && errno.IsValidation():
		c.JSON(hertz.StatusBadRequest, errEnvelope(errno.Error()))
	case errors.As(err, &errno) && errno.Code() == int(codes.PermissionDenied):
		c.JSON(hertz.StatusForbidden, errEnvelope(errno.Error()))
	default:
		// 不透出内部细节
		log.CtxError(ctx, "internal error, err=%s", err.Error())
		c.JSON(hertz.StatusInternalServerError, errEnvelope("An unexpected error occurred. Please try again later."))
	}
}

// BadRequest 请求体解析失败时的快捷出口
func BadRequest(c *app.RequestContext, msg string) {
	c.JSON(hertz.StatusBadRequest, errEnvelope(msg))
}

func errEnvelope(msg string) *dto.ErrorResp {
	return &dto.ErrorResp{
		Status:  consts.StatusError,
		Agent:   consts.AgentName,
		Message: msg,
	}
}

// Identity 解析本次请求的用户标识
// 优先取Authorization里的uid声明, 其次取metadata.user_id, 都没有则匿名
func Identity(c *app.RequestContext, meta *cmd.Metadata) string {
	if uid := jwtIdentity(c); uid != "" {
		return uid
	}
	if meta != nil {
		return strings.TrimSpace(meta.UserId)
	}
	return ""
}

// jwtIdentity 从Bearer token解析uid, 解析失败按未携带处理
func jwtIdentity(c *app.RequestContext) string {
	auth := string(c.GetHeader("Authorization"))
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	secret := config.GetConfig().Auth.SecretKey
	if secret == "" {
		return ""
	}

	token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, consts.ErrForbidden
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	uid, _ := claims["uid"].(string)
	return uid
}
