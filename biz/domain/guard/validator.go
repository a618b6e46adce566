package guard

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

// 入参边界
const (
	MinInputLen = 3
	MaxInputLen = 2000

	// maxCharRun 单字符最大连续重复次数, 超过视作灌水
	maxCharRun = 10
	// minAlphaRatio 字母占比下限, 低于视作乱码
	minAlphaRatio = 0.3
)

// 安全黑名单, 命中即拒绝
// 这里是拒绝而不是清洗: 部分剥离可能重新拼出可利用的子串
var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script`),
	regexp.MustCompile(`(?i)<\s*/?\s*[a-z][a-z0-9]*[^<>]*>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?i)\beval\s*\(`),
	regexp.MustCompile(`(?i)\bexec\s*\(`),
}

// url也按灌水处理, 求助文本里不应该出现链接
var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// Validate 校验并整理入参, 纯函数
// 返回整理后的文本, 或携带具体原因的校验错误
func Validate(agent, raw string) (string, *consts.Errno) {
	if agent != consts.AgentName {
		return "", consts.ErrWrongAgent
	}

	text := strings.TrimSpace(raw)
	n := len([]rune(text))
	if n < MinInputLen || n > MaxInputLen {
		return "", consts.ErrLengthOutOfBounds
	}

	for _, p := range blockedPatterns {
		if p.MatchString(text) {
			return "", consts.ErrUnsafeContent
		}
	}

	if isSpamLike(text) {
		return "", consts.ErrSpamLike
	}

	return text, nil
}

// isSpamLike 灌水/乱码启发式判断
func isSpamLike(text string) bool {
	if urlPattern.MatchString(text) {
		return true
	}

	// 单字符连续重复
	var last rune
	run := 0
	for _, r := range text {
		if r == last {
			run++
			if run > maxCharRun {
				return true
			}
		} else {
			last = r
			run = 1
		}
	}

	// 字符类别多样性: 过长文本里字母占比过低视作乱码
	runes := []rune(text)
	if len(runes) > 10 {
		alpha := 0
		for _, r := range runes {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				alpha++
			}
		}
		if float64(alpha)/float64(len(runes)) < minAlphaRatio {
			return true
		}
	}

	return false
}
