package memory

import (
	"math"
	"sort"
	"sync"

	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/util"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/net/context"
)

const (
	prefixMemoryCacheKey = "cache:memory"
	CollectionName       = "resilience_memory"

	// candidateLimit 相似检索时单个用户参与排序的最近记录条数上限
	candidateLimit = 200
)

var Mapper *MongoMapper
var once sync.Once

type IMongoMapper interface {
	Insert(ctx context.Context, mem *Memory) error
	FindSimilar(ctx context.Context, userId string, embedding []float64, k int) ([]*Memory, error)
	FindRecent(ctx context.Context, userId string, limit int) ([]*Memory, error)
	FindMany(ctx context.Context, userId string, p *cmd.Paging) (data []*Memory, total int64, err error)
	DeleteByUser(ctx context.Context, userId string) (int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{conn: conn}
}

func GetMongoMapper() *MongoMapper {
	once.Do(func() {
		c := config.GetConfig()
		conn := monc.MustNewModel(c.Mongo.URL, c.Mongo.DB, CollectionName, c.Cache)
		Mapper = &MongoMapper{
			conn: conn,
		}
	})
	return Mapper
}

func (m *MongoMapper) Insert(ctx context.Context, mem *Memory) error {
	if mem.ID.IsZero() {
		mem.ID = primitive.NewObjectID()
	}
	_, err := m.conn.InsertOneNoCache(ctx, mem)
	return err
}

// FindSimilar 返回该用户与给定向量最相似的k条记录
// 单用户的记录规模很小, 取最近一批在进程内做余弦排序即可, 不需要向量索引
func (m *MongoMapper) FindSimilar(ctx context.Context, userId string, embedding []float64, k int) ([]*Memory, error) {
	candidates, err := m.FindRecent(ctx, userId, candidateLimit)
	if err != nil {
		return nil, err
	}

	type scored struct {
		mem   *Memory
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		s := Cosine(embedding, c.Embedding)
		if s == 0 {
			continue
		}
		ranked = append(ranked, scored{mem: c, score: s})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	data := make([]*Memory, 0, k)
	for _, r := range ranked[:k] {
		data = append(data, r.mem)
	}
	return data, nil
}

// FindRecent 返回该用户最近的若干条记录, 新的在前
func (m *MongoMapper) FindRecent(ctx context.Context, userId string, limit int) ([]*Memory, error) {
	l := int64(limit)
	data := make([]*Memory, 0, limit)
	err := m.conn.Find(ctx, &data,
		bson.M{consts.UserId: userId}, &options.FindOptions{
			Limit: &l,
			Sort:  bson.M{consts.CreateTime: -1},
		})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (m *MongoMapper) FindMany(ctx context.Context, userId string, p *cmd.Paging) (data []*Memory, total int64, err error) {
	skip, limit := util.ParsePaging(p)
	filter := bson.M{}
	if userId != "" {
		filter[consts.UserId] = userId
	}
	data = make([]*Memory, 0, limit)
	err = m.conn.Find(ctx, &data,
		filter, &options.FindOptions{
			Skip:  &skip,
			Limit: &limit,
			Sort:  bson.M{consts.CreateTime: -1},
		})
	if err != nil {
		return nil, 0, err
	}
	total, err = m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return data, total, nil
}

// DeleteByUser 删除该用户的全部记录, 隐私清除通道
func (m *MongoMapper) DeleteByUser(ctx context.Context, userId string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{consts.UserId: userId})
}

// Cosine 余弦相似度, 维度不一致或零向量时返回0
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
