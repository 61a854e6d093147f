package dsl

import (
	"testing"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/utils"
)

func TestExpr_Eval(t *testing.T) {
	item := core.NewItem(1430)
	item.Title = "Use Deep Learning for Image Classification"
	item.Score = 3
	item.PutLabel(utils.LabelRecallSource, utils.RecallLabel("popular"))
	rctx := core.NewRecommendContext(7)
	rctx.Params["min_score"] = 2.0

	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{`label.recall_source == "popular"`, true},
		{`label.recall_source.contains("user_user")`, false},
		{`item.id == 1430`, true},
		{`item.score >= rctx.params.min_score`, true},
		{`rctx.user_id == 7 && item.title.startsWith("Use")`, true},
		{`"neighbor" in label`, false},
		{`item.labels.recall_source.source == "recall"`, true},
	}
	for _, tt := range tests {
		e, err := Compile(tt.expr)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.expr, err)
		}
		got, err := e.Eval(item, rctx)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tt.expr, err)
		}
		if got != tt.want {
			t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	if _, err := Compile(`item.score >`); err == nil {
		t.Error("syntax error should fail to compile")
	}
	e, err := Compile(`1 + 2`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := e.Eval(core.NewItem(1), nil); err == nil {
		t.Error("non-bool result should be an eval error")
	}
}

func TestEvaluate_MissingLabel(t *testing.T) {
	if _, err := Evaluate(`label.neighbor == "3"`, core.NewItem(1), nil); err == nil {
		t.Error("missing label key should be an eval error")
	}
}
