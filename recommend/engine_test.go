package recommend

import (
	"bytes"
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/interaction"
	"github.com/rushteam/artrec/text"
)

func events(pairs ...[2]int64) []interaction.Interaction {
	out := make([]interaction.Interaction, len(pairs))
	for i, p := range pairs {
		out[i] = interaction.Interaction{UserID: p[0], ArticleID: p[1], Title: titleOf(p[1])}
	}
	return out
}

func titleOf(id int64) string {
	return "article-" + string(rune('A'+id%26))
}

func ids(recs []Recommendation) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.ArticleID
	}
	return out
}

func newEngine(t *testing.T, evs []interaction.Interaction, cat *catalog.Catalog, vectors [][]float64) *Engine {
	t.Helper()
	eng, err := New(context.Background(), interaction.NewStore(evs), cat, vectors)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

// contentFixture: 10=[1,0,0] 20=[1,1,0] 30=[0,1,0] 40=[0,0,1]
func contentFixture() (*catalog.Catalog, [][]float64) {
	cat := catalog.New([]catalog.Record{
		{ArticleID: 10, Title: "Ten"},
		{ArticleID: 20, Title: "Twenty"},
		{ArticleID: 30, Title: "Thirty"},
		{ArticleID: 40, Title: "Forty"},
	})
	return cat, [][]float64{
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func TestEngine_TwoUserExample(t *testing.T) {
	eng := newEngine(t, events([2]int64{1, 1}, [2]int64{1, 2}, [2]int64{2, 2}, [2]int64{2, 3}), nil, nil)

	seen, err := eng.UserArticles(1)
	if err != nil {
		t.Fatalf("UserArticles: %v", err)
	}
	if got := ids(seen); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("UserArticles(1) = %v", got)
	}

	nbs, err := eng.RankNeighbors(1)
	if err != nil {
		t.Fatalf("RankNeighbors: %v", err)
	}
	if len(nbs) != 1 || nbs[0].UserID != 2 || nbs[0].Shared != 1 || nbs[0].Total != 2 {
		t.Errorf("RankNeighbors(1) = %+v", nbs)
	}

	if got := ids(eng.TopArticles(1)); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("TopArticles(1) = %v", got)
	}

	recs, err := eng.UserUserRecs(1, 5)
	if err != nil {
		t.Fatalf("UserUserRecs: %v", err)
	}
	if got := ids(recs); !reflect.DeepEqual(got, []int64{3}) {
		t.Errorf("UserUserRecs(1, 5) = %v", got)
	}

	if _, err := eng.UserUserRecs(99, 5); !core.IsUnknownUser(err) {
		t.Errorf("UserUserRecs(99) err = %v, want UNKNOWN_USER", err)
	}
}

func TestEngine_TopArticles(t *testing.T) {
	// 3 出现 3 次；1、2 各 2 次，1 先出现
	eng := newEngine(t, events(
		[2]int64{1, 1}, [2]int64{1, 2}, [2]int64{2, 3},
		[2]int64{2, 2}, [2]int64{3, 3}, [2]int64{3, 1},
		[2]int64{3, 3}, [2]int64{4, 4},
	), nil, nil)

	tests := []struct {
		n    int
		want []int64
	}{
		{0, []int64{}},
		{-1, []int64{}},
		{1, []int64{3}},
		{3, []int64{3, 1, 2}},
		{10, []int64{3, 1, 2, 4}},
	}
	for _, tt := range tests {
		got := eng.TopArticles(tt.n)
		if !reflect.DeepEqual(ids(got), tt.want) {
			t.Errorf("TopArticles(%d) = %v, want %v", tt.n, ids(got), tt.want)
		}
		for _, r := range got {
			if r.Title != titleOf(r.ArticleID) {
				t.Errorf("title of %d = %q", r.ArticleID, r.Title)
			}
		}
	}

	counts := eng.TopArticleCounts(0)
	for i := 1; i < len(counts); i++ {
		if counts[i].Count > counts[i-1].Count {
			t.Errorf("counts not non-increasing: %+v", counts)
		}
	}
}

func cfFixture() []interaction.Interaction {
	return events(
		[2]int64{1, 1}, [2]int64{1, 2},
		[2]int64{2, 1}, [2]int64{2, 3}, [2]int64{2, 4},
		[2]int64{3, 2}, [2]int64{3, 3}, [2]int64{3, 5},
		[2]int64{4, 6},
	)
}

func TestEngine_UserUserRecs(t *testing.T) {
	eng := newEngine(t, cfFixture(), nil, nil)

	tests := []struct {
		name string
		user int64
		m    int
		want []int64
	}{
		{"all neighbors", 1, 10, []int64{3, 4, 5, 6}},
		{"stop after first neighbor", 1, 2, []int64{3, 4}},
		{"truncate second neighbor", 1, 3, []int64{3, 4, 5}},
		{"exactly m", 1, 1, []int64{3}},
		{"zero m", 1, 0, []int64{}},
		{"isolated user", 4, 3, []int64{1, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := eng.UserUserRecs(tt.user, tt.m)
			if err != nil {
				t.Fatalf("UserUserRecs: %v", err)
			}
			if got := ids(recs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UserUserRecs(%d, %d) = %v, want %v", tt.user, tt.m, got, tt.want)
			}
		})
	}
}

func TestEngine_UserUserRecsNeverSeen(t *testing.T) {
	eng := newEngine(t, cfFixture(), nil, nil)
	for _, u := range []int64{1, 2, 3, 4} {
		recs, err := eng.UserUserRecs(u, 100)
		if err != nil {
			t.Fatalf("UserUserRecs(%d): %v", u, err)
		}
		got := make(map[int64]bool)
		for _, r := range recs {
			if eng.Matrix().Has(u, r.ArticleID) {
				t.Errorf("user %d already saw %d", u, r.ArticleID)
			}
			if got[r.ArticleID] {
				t.Errorf("duplicate %d for user %d", r.ArticleID, u)
			}
			got[r.ArticleID] = true
		}
	}
}

func TestEngine_SimilarArticles(t *testing.T) {
	cat, vectors := contentFixture()
	eng := newEngine(t, nil, cat, vectors)

	tests := []struct {
		name string
		ref  catalog.Ref
		n    int
		want []int64
	}{
		{"by id", catalog.ByID(10), 2, []int64{20, 30}},
		{"tie keeps index order", catalog.ByTitle("Twenty"), 1, []int64{10}},
		{"larger than corpus", catalog.ByID(40), 10, []int64{10, 20, 30}},
		{"unknown id", catalog.ByID(999), 3, []int64{}},
		{"zero n", catalog.ByID(10), 0, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.SimilarArticles(tt.ref, tt.n)
			if err != nil {
				t.Fatalf("SimilarArticles: %v", err)
			}
			gotIDs := make([]int64, len(got))
			for i, s := range got {
				gotIDs[i] = s.ArticleID
				if s.Title == "" {
					t.Errorf("missing title for %d", s.ArticleID)
				}
			}
			if !reflect.DeepEqual(gotIDs, tt.want) {
				t.Errorf("SimilarArticles(%v, %d) = %v, want %v", tt.ref, tt.n, gotIDs, tt.want)
			}
		})
	}

	if _, err := eng.SimilarArticles(catalog.ByTitle("No Such Title"), 3); !core.IsArticleNotFound(err) {
		t.Errorf("unknown title err = %v, want ARTICLE_NOT_FOUND", err)
	}
	if _, err := eng.SimilarArticles(catalog.Ref{}, 3); !core.IsInvalidArticleRef(err) {
		t.Errorf("zero ref err = %v, want INVALID_ARTICLE_REF", err)
	}
}

func TestEngine_ContentRecs(t *testing.T) {
	cat, vectors := contentFixture()
	eng := newEngine(t, events(
		[2]int64{1, 10},
		[2]int64{2, 30}, [2]int64{2, 40},
		[2]int64{3, 99}, [2]int64{3, 10},
	), cat, vectors)

	tests := []struct {
		name string
		user int64
		m, n int
		want []int64
	}{
		{"single seen", 1, 5, 2, []int64{20, 30}},
		{"early stop", 1, 1, 2, []int64{20}},
		{"accumulate in read order", 2, 5, 1, []int64{20, 10}},
		{"skip uncatalogued", 3, 5, 1, []int64{20}},
		{"zero m", 1, 0, 2, []int64{}},
		{"zero n", 1, 5, 0, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := eng.ContentRecs(tt.user, tt.m, tt.n)
			if err != nil {
				t.Fatalf("ContentRecs: %v", err)
			}
			if got := ids(recs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ContentRecs(%d, %d, %d) = %v, want %v", tt.user, tt.m, tt.n, got, tt.want)
			}
			for _, r := range recs {
				want, _ := cat.Title(r.ArticleID)
				if r.Title != want {
					t.Errorf("title of %d = %q, want %q", r.ArticleID, r.Title, want)
				}
			}
		})
	}

	if _, err := eng.ContentRecs(42, 5, 2); !core.IsUnknownUser(err) {
		t.Errorf("ContentRecs(42) err = %v, want UNKNOWN_USER", err)
	}
}

func TestEngine_UnboundedM(t *testing.T) {
	eng := newEngine(t, cfFixture(), nil, nil)
	recs, err := eng.UserUserRecs(1, math.MaxInt)
	if err != nil {
		t.Fatalf("UserUserRecs: %v", err)
	}
	if got, want := ids(recs), []int64{3, 4, 5, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("UserUserRecs(1, MaxInt) = %v, want %v", got, want)
	}

	cat, vectors := contentFixture()
	eng = newEngine(t, events([2]int64{1, 10}), cat, vectors)
	recs, err = eng.ContentRecs(1, math.MaxInt, 10)
	if err != nil {
		t.Fatalf("ContentRecs: %v", err)
	}
	if got, want := ids(recs), []int64{20, 30, 40}; !reflect.DeepEqual(got, want) {
		t.Errorf("ContentRecs(1, MaxInt, 10) = %v, want %v", got, want)
	}
}

func TestEngine_UserUserRecsNeighborReadOrder(t *testing.T) {
	// 全局首次出现顺序为 4、1、5，邻居 2 的阅读顺序为 1、5、4
	eng := newEngine(t, events(
		[2]int64{3, 4},
		[2]int64{1, 1},
		[2]int64{2, 1}, [2]int64{2, 5}, [2]int64{2, 4},
	), nil, nil)

	recs, err := eng.UserUserRecs(1, 2)
	if err != nil {
		t.Fatalf("UserUserRecs: %v", err)
	}
	if got, want := ids(recs), []int64{5, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("UserUserRecs(1, 2) = %v, want %v", got, want)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	cat, vectors := contentFixture()
	evs := append(cfFixture(), events([2]int64{1, 10}, [2]int64{2, 30}, [2]int64{5, 40})...)

	a := newEngine(t, evs, cat, vectors)
	b := newEngine(t, evs, cat, vectors)

	if !reflect.DeepEqual(a.TopArticles(100), b.TopArticles(100)) {
		t.Error("TopArticles differs between builds")
	}
	for _, u := range []int64{1, 2, 3, 4, 5} {
		ra, errA := a.UserUserRecs(u, 10)
		rb, errB := b.UserUserRecs(u, 10)
		if errA != nil || errB != nil || !reflect.DeepEqual(ra, rb) {
			t.Errorf("UserUserRecs(%d) differs: %v %v", u, ra, rb)
		}
		ca, errA := a.ContentRecs(u, 10, 2)
		cb, errB := b.ContentRecs(u, 10, 2)
		if errA != nil || errB != nil || !reflect.DeepEqual(ca, cb) {
			t.Errorf("ContentRecs(%d) differs: %v %v", u, ca, cb)
		}
	}
}

func TestNew_VectorMismatch(t *testing.T) {
	cat, vectors := contentFixture()
	_, err := New(context.Background(), interaction.NewStore(nil), cat, vectors[:2])
	if !core.IsInvalidInput(err) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestBuild_WithTFIDF(t *testing.T) {
	cat := catalog.New([]catalog.Record{
		{ArticleID: 1, Title: "Python for data science", Description: "data science with python"},
		{ArticleID: 2, Title: "Pandas basics", Description: "python data analysis"},
		{ArticleID: 3, Title: "Neural nets", Description: "deep learning neural networks"},
	})
	var buf bytes.Buffer
	eng, err := Build(context.Background(), interaction.NewStore(events([2]int64{1, 1})), cat, text.NewTFIDF(),
		WithLogger(zerolog.New(&buf)), WithWorkers(2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(buf.String(), "recommend engine built") {
		t.Errorf("expected build log, got %q", buf.String())
	}

	sims, err := eng.SimilarArticles(catalog.ByID(1), 1)
	if err != nil {
		t.Fatalf("SimilarArticles: %v", err)
	}
	if len(sims) != 1 || sims[0].ArticleID != 2 {
		t.Errorf("SimilarArticles(1, 1) = %+v, want article 2", sims)
	}
	if s, ok := eng.Index().Score(1, 1); !ok || s != 1 {
		t.Errorf("self similarity = %v, %v", s, ok)
	}

	recs, err := eng.ContentRecs(1, 1, 2)
	if err != nil {
		t.Fatalf("ContentRecs: %v", err)
	}
	if len(recs) != 1 || recs[0].ArticleID != 2 || recs[0].Title != "Pandas basics" {
		t.Errorf("ContentRecs(1) = %+v", recs)
	}
}
