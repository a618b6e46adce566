package memory

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory 一条落库的历史互动记录, 创建后不再修改
// Embedding 是该次输入文本的向量, 用于相似检索
type Memory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId       string             `bson:"user_id" json:"user_id"`
	Excerpt      string             `bson:"excerpt" json:"excerpt"`
	Sentiment    string             `bson:"sentiment" json:"sentiment"`
	StressLevel  string             `bson:"stress_level" json:"stress_level"`
	CrisisScore  float64            `bson:"crisis_score" json:"crisis_score"`
	Emotions     []string           `bson:"emotions" json:"emotions"`
	StrategyType string             `bson:"strategy_type" json:"strategy_type"`
	Embedding    []float64          `bson:"embedding" json:"-"`
	CreateTime   time.Time          `bson:"create_time" json:"create_time"`
}
