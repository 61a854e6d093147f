package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/artrec/core"
)

func TestTopNNode(t *testing.T) {
	in := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3)}
	withM := core.NewRecommendContext(1)
	withM.Params["m"] = 1

	tests := []struct {
		name string
		node *TopNNode
		rctx *core.RecommendContext
		want int
	}{
		{"truncate", &TopNNode{N: 2}, nil, 2},
		{"no limit", &TopNNode{}, nil, 3},
		{"larger than input", &TopNNode{N: 10}, nil, 3},
		{"param override", &TopNNode{N: 2, ParamKey: "m"}, withM, 1},
		{"param absent", &TopNNode{N: 2, ParamKey: "m"}, core.NewRecommendContext(1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.node.Process(context.Background(), tt.rctx, in)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
		})
	}
}
