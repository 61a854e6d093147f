// Package artrec 是一个文章推荐工具包（Article Recommender）。
//
// 设计要点：
// - 四种策略：热门排行、user-user 协同过滤、基于描述的内容推荐、相似文章
// - 引擎只读：交互日志与文章目录加载后构建 user-item 矩阵与相似度矩阵，查询无副作用
// - Pipeline-first: 策略可作为召回源，经 Fanout/Filter/TopN 组合成 Pipeline
// - Labels-first: 每条结果携带 recall_source 等标签，便于解释与观测
package artrec

import (
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/recommend"
)

// 轻量 facade：便于用户直接 import "artrec" 使用核心抽象。
type Engine = recommend.Engine
type Recommendation = recommend.Recommendation
type ScoredArticle = recommend.ScoredArticle

type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
