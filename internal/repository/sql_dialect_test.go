package repository

import (
	"strings"
	"testing"
)

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperatorByDialect("postgres"); got != "ILIKE" {
		t.Fatalf("postgres operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite operator want LIKE got %s", got)
	}
	if got := likeOperatorByDialect(""); got != "LIKE" {
		t.Fatalf("empty dialect should default to LIKE, got %s", got)
	}
}

func TestBuildKeywordCondition(t *testing.T) {
	condition, argCount := buildKeywordConditionByDialect("sqlite", []string{"title", "author", " "})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "title LIKE ? OR author LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}

	condition, _ = buildKeywordConditionByDialect("postgres", []string{"title"})
	if !strings.Contains(condition, "ILIKE") {
		t.Fatalf("postgres condition should use ILIKE, got %s", condition)
	}
}

func TestKeywordLikeArgs(t *testing.T) {
	args := keywordLikeArgs(" 小王子 ", 2)
	if len(args) != 2 {
		t.Fatalf("args len want 2 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%小王子%" {
			t.Fatalf("args[%d] want %%小王子%% got %v", idx, arg)
		}
	}
}
