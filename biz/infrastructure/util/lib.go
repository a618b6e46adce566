package util

import (
	"fmt"
	"log"
	"net/smtp"
	"strconv"

	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
)

// FailOnError 出现异常时中止
func FailOnError(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err.Error())
	}
}

// ParsePaging 解析分页参数
func ParsePaging(p *cmd.Paging) (skip, limit int64) {
	// 设置分页参数
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	skip = int64((p.Page - 1) * p.Limit)
	limit = int64(p.Limit)
	return skip, limit
}

// AlertEmail 危机分支触发时给值班邮箱发送预警邮件
func AlertEmail() (err error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return nil
	}
	c := cfg.SMTP
	if c.Host == "" || c.Alert == "" {
		return nil
	}
	auth := smtp.PlainAuth("", c.Username, c.Password, c.Host)
	err = smtp.SendMail(c.Host+":"+strconv.Itoa(c.Port), auth, c.Username, []string{c.Alert}, []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: xh-polaris\r\n"+
			"Content-Type: text/plain"+"; charset=UTF-8\r\n"+
			"Subject: 预警信息\r\n\r\n"+
			"检测到一次高危机分值的求助请求, 请值班人员立即关注\r\n", c.Alert)))
	return err
}
