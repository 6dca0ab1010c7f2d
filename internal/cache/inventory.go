package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	AnswersKeyPrefix = "answers:question:%d"

	ActiveQuestionKey = "question:active"
	StatsKey          = "stats"
)

const (
	UserTTL           = 5 * time.Minute
	ActiveQuestionTTL = 1 * time.Minute
	AnswersTTL        = 30 * time.Second
	StatsTTL          = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func AnswersKey(questionID uint) string {
	return fmt.Sprintf(AnswersKeyPrefix, questionID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateActiveQuestion drops the cached active question and the stats
// snapshot; both change whenever the activation state does.
func InvalidateActiveQuestion(ctx context.Context) {
	Invalidate(ctx, ActiveQuestionKey)
	Invalidate(ctx, StatsKey)
}

func InvalidateAnswers(ctx context.Context, questionID uint) {
	Invalidate(ctx, AnswersKey(questionID))
	Invalidate(ctx, StatsKey)
}
