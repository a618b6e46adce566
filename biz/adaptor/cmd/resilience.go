package cmd

type (
	// ResilienceReq 主入口请求
	ResilienceReq struct {
		// Agent 调用方声明的智能体标识, 必须是resilience_coach
		Agent     string    `json:"agent"`
		InputText string    `json:"input_text"`
		Metadata  *Metadata `json:"metadata,omitempty"`
	}

	// Metadata 请求附加信息, 全部可选
	Metadata struct {
		UserId   string `json:"user_id,omitempty"`
		Language string `json:"language,omitempty"`
	}

	// HealthResp 存活探测响应
	HealthResp struct {
		Status  string `json:"status"`
		Agent   string `json:"agent"`
		Version string `json:"version"`
		Message string `json:"message"`
	}
)

type (
	// ListMemoryReq 查询某个用户的历史互动记录
	ListMemoryReq struct {
		Paging
		UserId string `json:"user_id" query:"user_id"`
	}

	// Memory 历史互动记录视图
	Memory struct {
		ID           string   `json:"id,omitempty"`
		UserId       string   `json:"user_id"`
		Excerpt      string   `json:"excerpt"`
		Sentiment    string   `json:"sentiment"`
		StressLevel  string   `json:"stress_level"`
		CrisisScore  float64  `json:"crisis_score"`
		Emotions     []string `json:"emotions"`
		StrategyType string   `json:"strategy_type"`
		CreateTime   int64    `json:"create_time"`
	}

	ListMemoryResp struct {
		Code   int       `json:"code"`
		Msg    string    `json:"msg"`
		Memory []*Memory `json:"memory"`
		Total  int64     `json:"total"`
	}

	// EraseMemoryReq 按用户删除全部记忆, 隐私清除通道
	EraseMemoryReq struct {
		UserId string `json:"user_id"`
	}

	EraseMemoryResp struct {
		Code    int    `json:"code"`
		Msg     string `json:"msg"`
		Deleted int64  `json:"deleted"`
	}
)
