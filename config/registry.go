package config

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

// 入口处需要 import _ "github.com/rushteam/artrec/config/builders" 完成内置 Node 注册。
// 注册表只保存不带运行时依赖的构建器；召回 Node 与 seen 过滤器要用 builders.Factory(deps)
// 绑定推荐引擎后才能真正构建。

// NodeBuilder 与 pipeline.NodeBuilder 一致。
type NodeBuilder = pipeline.NodeBuilder

var (
	registryMu sync.RWMutex
	registry   = make(map[string]NodeBuilder)
)

// Register 在 init 中登记一种 Node 类型，例如 config.Register("rerank.topn", BuildTopNNode)。
// 空类型或空构建器被忽略，同名类型后注册者覆盖。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typeName] = builder
}

// SupportedTypes 返回已登记的 Node 类型（排序）。
func SupportedTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 用注册表的快照创建 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range registry {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 用 factory 试构建每个 Node，校验推荐 Pipeline 配置：
//   - 至少一个 Node，且第一个 Node 是召回 Node（过滤、截断都作用在召回结果上）
//   - 每个 Node 类型都已注册，配置能被对应构建器接受
//
// factory 应与实际构建 Pipeline 时使用的相同（通常是 builders.Factory(deps)），
// 为 nil 时使用 DefaultFactory，此时依赖引擎的 Node 会报错。
// 所有问题合并为一个 INVALID_INPUT 错误返回。
func ValidatePipelineConfig(cfg *pipeline.Config, factory *pipeline.NodeFactory) error {
	if cfg == nil {
		return core.NewInvalidInputError("config", "pipeline: empty config")
	}
	if factory == nil {
		factory = DefaultFactory()
	}
	nodes := cfg.Pipeline.Nodes
	if len(nodes) == 0 {
		return core.NewInvalidInputError("config", fmt.Sprintf("pipeline %q: no nodes", cfg.Pipeline.Name))
	}

	known := make(map[string]struct{})
	for _, t := range factory.Types() {
		known[t] = struct{}{}
	}

	var errs []error
	for i, nc := range nodes {
		if _, ok := known[nc.Type]; !ok {
			errs = append(errs, fmt.Errorf("node #%d: unsupported type %q (supported: %v)", i, nc.Type, factory.Types()))
			continue
		}
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			errs = append(errs, fmt.Errorf("node #%d %s: %w", i, nc.Type, err))
			continue
		}
		if i == 0 && node.Kind() != pipeline.KindRecall {
			errs = append(errs, fmt.Errorf("node #0 %s: first node must be a recall node, got %s", nc.Type, node.Kind()))
		}
	}
	if len(errs) > 0 {
		return core.NewInvalidInputError("config",
			fmt.Sprintf("pipeline %q: %v", cfg.Pipeline.Name, errors.Join(errs...)))
	}
	return nil
}
