// Command artrec 加载交互与文章数据，构建推荐引擎并输出四类推荐结果：
// 热门文章、user-user 协同过滤、内容推荐、相似文章。
//
//	artrec -user 1 -article "Data Wrangling at Slack"
//	artrec -json -pipeline pipeline.yaml
//	artrec -metrics-addr :9090   # 输出结果后继续暴露 /metrics，直到 Ctrl-C
//
// 配置见 config.Settings（artrec.yaml 与 ARTREC_* 环境变量）。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/config"
	"github.com/rushteam/artrec/config/builders"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/interaction"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/conv"
	"github.com/rushteam/artrec/pkg/logging"
	"github.com/rushteam/artrec/recommend"
	"github.com/rushteam/artrec/store"
	"github.com/rushteam/artrec/text"
)

type options struct {
	configPath   string
	pipelinePath string
	userID       int64
	article      string
	asJSON       bool
	metricsAddr  string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default: $ARTREC_CONFIG or artrec.yaml)")
	flag.StringVar(&opts.pipelinePath, "pipeline", "", "pipeline config (YAML/JSON), overrides pipeline.path")
	flag.Int64Var(&opts.userID, "user", 1, "user id to recommend for")
	flag.StringVar(&opts.article, "article", "Data Wrangling at Slack", "article id or exact title for similar articles")
	flag.BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address after printing results")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		logger := logging.Logger()
		logger.Error().Err(err).Str("code", core.ErrorCode(err)).Msg("artrec failed")
		os.Exit(1)
	}
}

// Report 是一次运行的全部推荐结果。
type Report struct {
	UserID          int64                     `json:"user_id"`
	TopArticles     []recommend.Recommendation `json:"top_articles"`
	UserUserRecs    []recommend.Recommendation `json:"user_user_recs"`
	ContentRecs     []recommend.Recommendation `json:"content_recs"`
	Article         string                    `json:"article"`
	SimilarArticles []recommend.ScoredArticle `json:"similar_articles"`
	Pipeline        []PipelineItem            `json:"pipeline,omitempty"`
}

// PipelineItem 是 Pipeline 输出的一条结果。
type PipelineItem struct {
	ArticleID int64   `json:"article_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	Source    string  `json:"source"`
}

func run(ctx context.Context, opts options, out io.Writer) error {
	settings, err := config.LoadSettings(opts.configPath)
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: settings.Logging.Level, Format: settings.Logging.Format})
	logger := logging.Component("artrec")

	eng, err := buildEngine(ctx, settings)
	if err != nil {
		return err
	}

	kv, err := openStore(settings)
	if err != nil {
		return err
	}
	defer kv.Close()
	if err := publishPopularity(ctx, eng, kv, settings.Store.PopularKey); err != nil {
		return err
	}
	logger.Info().Str("store", kv.Name()).Str("key", settings.Store.PopularKey).Msg("popularity snapshot published")

	report, err := recommendAll(eng, settings, opts)
	if err != nil {
		return err
	}

	pipelinePath := opts.pipelinePath
	if pipelinePath == "" {
		pipelinePath = settings.Pipeline.Path
	}
	if pipelinePath != "" {
		deps := builders.Deps{
			Engine:     eng,
			Store:      kv,
			PopularKey: settings.Store.PopularKey,
			Defaults:   settings,
			Logger:     &logger,
		}
		items, err := runPipeline(ctx, pipelinePath, deps, opts.userID)
		if err != nil {
			return err
		}
		report.Pipeline = items
	}

	if opts.asJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		if err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}

	if opts.metricsAddr != "" {
		return serveMetrics(ctx, opts.metricsAddr, logger)
	}
	return nil
}

func buildEngine(ctx context.Context, settings *config.Settings) (*recommend.Engine, error) {
	interactions, err := interaction.LoadFile(settings.Data.Interactions, interaction.NewIDMapper())
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadFile(settings.Data.Articles)
	if err != nil {
		return nil, err
	}
	return recommend.Build(ctx, interactions, cat, text.NewTFIDF(),
		recommend.WithLogger(logging.Component("recommend")),
		recommend.WithWorkers(settings.Recommend.Workers),
	)
}

func openStore(settings *config.Settings) (core.KeyValueStore, error) {
	if settings.Store.Backend == "redis" {
		return store.NewRedisStore(settings.Store.RedisAddr, settings.Store.RedisDB)
	}
	return store.NewMemoryStore(), nil
}

func publishPopularity(ctx context.Context, eng *recommend.Engine, kv core.KeyValueStore, key string) error {
	counts := eng.TopArticleCounts(0)
	entries := make([]store.PopularEntry, len(counts))
	for i, c := range counts {
		entries[i] = store.PopularEntry{ArticleID: c.ArticleID, Title: c.Title, Count: c.Count}
	}
	return store.PublishPopularity(ctx, kv, key, entries)
}

func recommendAll(eng *recommend.Engine, settings *config.Settings, opts options) (*Report, error) {
	report := &Report{
		UserID:      opts.userID,
		TopArticles: eng.TopArticles(settings.DefaultTopN()),
		Article:     opts.article,
	}

	var err error
	report.UserUserRecs, err = eng.UserUserRecs(opts.userID, settings.DefaultUserRecs())
	if err != nil {
		return nil, fmt.Errorf("user-user recs for user %d: %w", opts.userID, err)
	}
	report.ContentRecs, err = eng.ContentRecs(opts.userID, settings.DefaultContentRecs(), settings.DefaultSimilarPerArticle())
	if err != nil {
		return nil, fmt.Errorf("content recs for user %d: %w", opts.userID, err)
	}
	report.SimilarArticles, err = eng.SimilarArticles(articleRef(opts.article), settings.DefaultSimilarPerArticle())
	if err != nil {
		return nil, fmt.Errorf("similar articles for %q: %w", opts.article, err)
	}
	return report, nil
}

// articleRef 把命令行参数解析为文章引用：能解析为整数 ID 的按 ID，否则按标题。
func articleRef(s string) catalog.Ref {
	if id, err := conv.ParseArticleID(s); err == nil {
		return catalog.ByID(id)
	}
	return catalog.ByTitle(s)
}

func runPipeline(ctx context.Context, path string, deps builders.Deps, userID int64) ([]PipelineItem, error) {
	cfg, err := pipeline.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load pipeline %s: %w", path, err)
	}
	factory := builders.Factory(deps)
	if err := config.ValidatePipelineConfig(cfg, factory); err != nil {
		return nil, err
	}
	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		return nil, err
	}
	p.Logger = deps.Logger

	rctx := core.NewRecommendContext(userID)
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]PipelineItem, 0, len(items))
	for _, it := range items {
		out = append(out, PipelineItem{
			ArticleID: it.ID,
			Title:     it.Title,
			Score:     it.Score,
			Source:    it.Labels["recall_source"].Value,
		})
	}
	return out, nil
}

func printReport(w io.Writer, r *Report) {
	section := func(title string, recs []recommend.Recommendation) {
		fmt.Fprintln(w, title)
		for _, rec := range recs {
			fmt.Fprintf(w, "     %s\n", rec.Title)
		}
		fmt.Fprintln(w)
	}
	section(fmt.Sprintf("The top %d popular articles are:", len(r.TopArticles)), r.TopArticles)
	section(fmt.Sprintf("Based on user-user collaborative filtering, the recommended articles for user %d are:", r.UserID), r.UserUserRecs)
	section(fmt.Sprintf("Based on article descriptions, the recommended articles for user %d are:", r.UserID), r.ContentRecs)

	fmt.Fprintf(w, "Based on article descriptions, these are %d articles the most similar to %q\n", len(r.SimilarArticles), r.Article)
	for _, s := range r.SimilarArticles {
		fmt.Fprintf(w, "     %-8d %-60s %.4f\n", s.ArticleID, s.Title, s.Score)
	}

	if len(r.Pipeline) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Pipeline results for user %d:\n", r.UserID)
		for _, it := range r.Pipeline {
			fmt.Fprintf(w, "     %-8d %-60s %-12s\n", it.ArticleID, it.Title, it.Source)
		}
	}
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
