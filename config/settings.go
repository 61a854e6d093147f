package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/artrec/core"
)

const (
	// EnvPrefix 是环境变量前缀：ARTREC_RECOMMEND_TOP_N -> recommend.top_n
	EnvPrefix = "ARTREC_"

	// ConfigPathEnvVar 指定配置文件路径
	ConfigPathEnvVar = "ARTREC_CONFIG"
)

// DefaultConfigPaths 是未指定 ARTREC_CONFIG 时依次查找的配置文件。
var DefaultConfigPaths = []string{
	"artrec.yaml",
	"/etc/artrec/artrec.yaml",
}

// Settings 是进程级配置。
//
// 优先级：环境变量 > 配置文件 > 默认值。
type Settings struct {
	Data      DataSettings      `koanf:"data"`
	Recommend RecommendSettings `koanf:"recommend"`
	Store     StoreSettings     `koanf:"store"`
	Logging   LoggingSettings   `koanf:"logging"`
	Pipeline  PipelineSettings  `koanf:"pipeline"`
}

// DataSettings 是输入数据文件。
type DataSettings struct {
	Interactions string `koanf:"interactions" validate:"required"` // article_id,title,email
	Articles     string `koanf:"articles" validate:"required"`     // doc_body,doc_description,doc_full_name,doc_status,article_id
}

// RecommendSettings 是各推荐策略的默认条数。
type RecommendSettings struct {
	TopN              int `koanf:"top_n" validate:"gte=0"`
	UserRecs          int `koanf:"user_recs" validate:"gte=0"`
	ContentRecs       int `koanf:"content_recs" validate:"gte=0"`
	SimilarPerArticle int `koanf:"similar_per_article" validate:"gte=0"`

	// Workers 相似度矩阵构建并发数，0 表示 GOMAXPROCS
	Workers int `koanf:"workers" validate:"gte=0"`
}

// StoreSettings 是热门榜快照存储。
type StoreSettings struct {
	Backend    string `koanf:"backend" validate:"oneof=memory redis"`
	RedisAddr  string `koanf:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB    int    `koanf:"redis_db" validate:"gte=0"`
	PopularKey string `koanf:"popular_key" validate:"required"`
}

// LoggingSettings 是日志配置。
type LoggingSettings struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// PipelineSettings 指向可选的 Pipeline 配置文件（YAML/JSON）。
type PipelineSettings struct {
	Path string `koanf:"path"`
}

// DefaultSettings 返回默认配置。
func DefaultSettings() *Settings {
	return &Settings{
		Data: DataSettings{
			Interactions: "data/user-item-interactions.csv",
			Articles:     "data/articles_community.csv",
		},
		Recommend: RecommendSettings{
			TopN:              10,
			UserRecs:          10,
			ContentRecs:       10,
			SimilarPerArticle: 2,
		},
		Store: StoreSettings{
			Backend:    "memory",
			RedisAddr:  "localhost:6379",
			PopularKey: "artrec:popular",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

var validate = validator.New()

// Validate 校验配置。
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return core.NewInvalidInputError("config", fmt.Sprintf("config: %v", err))
	}
	return nil
}

// LoadSettings 依次加载默认值、配置文件（path 为空时查找 ARTREC_CONFIG 与 DefaultConfigPaths）、
// ARTREC_* 环境变量，然后校验。
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc 把 ARTREC_SECTION_KEY 映射为 section.key，
// 顶层 section 名不含下划线，因此只在第一个下划线处切分。
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + rest
}

// 默认条数，Settings 同时实现 core.RecommendConfig
var _ core.RecommendConfig = (*Settings)(nil)

func (s *Settings) DefaultTopN() int              { return s.Recommend.TopN }
func (s *Settings) DefaultUserRecs() int          { return s.Recommend.UserRecs }
func (s *Settings) DefaultContentRecs() int       { return s.Recommend.ContentRecs }
func (s *Settings) DefaultSimilarPerArticle() int { return s.Recommend.SimilarPerArticle }
