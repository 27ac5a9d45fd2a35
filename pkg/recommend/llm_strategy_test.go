package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeProvider answers every prompt with a canned string.
type fakeProvider struct {
	answer string
	err    error
	calls  int
}

var _ llm.LLMProvider = &fakeProvider{}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, options...)
}

// erroringProvider always fails, simulating a down language oracle.
type erroringProvider struct{}

var _ llm.LLMProvider = &erroringProvider{}

func (e *erroringProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("model unavailable")
}

func (e *erroringProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("model unavailable")
}

func TestLLMStrategyParsesMessyAnswers(t *testing.T) {
	unplaced := makeHouses(6)
	rated := rateHouses(makeHouses(2), constant.RatingInterested)

	answer := fmt.Sprintf("Here are my picks:\n1. %s\n- %s,\n```\n%s\n```\nnot-an-id\n",
		unplaced[0].Id, unplaced[2].Id, unplaced[4].Id)

	strategy := NewLLMStrategy(&fakeProvider{answer: answer})
	sc := makeContext(unplaced, rated, 10)

	got, err := strategy.Contribute(context.Background(), sc)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, unplaced[0].Id, got[0].Id)
	assert.Equal(t, unplaced[2].Id, got[1].Id)
	assert.Equal(t, unplaced[4].Id, got[2].Id)
}

func TestLLMStrategyIgnoresForeignIds(t *testing.T) {
	unplaced := makeHouses(3)
	rated := rateHouses(makeHouses(1), constant.RatingNeutral)

	answer := fmt.Sprintf("%s\n%s\n", uuid.New(), unplaced[1].Id)
	strategy := NewLLMStrategy(&fakeProvider{answer: answer})
	sc := makeContext(unplaced, rated, 2)

	got, err := strategy.Contribute(context.Background(), sc)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, unplaced[1].Id, got[0].Id)
}

func TestLLMStrategyInactiveWithoutRatings(t *testing.T) {
	provider := &fakeProvider{answer: "anything"}
	strategy := NewLLMStrategy(provider)
	sc := makeContext(makeHouses(5), nil, 5)

	got, err := strategy.Contribute(context.Background(), sc)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, provider.calls)
}

func TestParseIdsVariants(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{name: "newline separated", answer: fmt.Sprintf("%s\n%s", a, b), want: 2},
		{name: "comma separated", answer: fmt.Sprintf("%s, %s", a, b), want: 2},
		{name: "markdown bullets", answer: fmt.Sprintf("* %s\n* %s", a, b), want: 2},
		{name: "prose only", answer: "I could not decide.", want: 0},
		{name: "empty", answer: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseIds(tt.answer)
			if len(got) != tt.want {
				t.Errorf("parseIds() = %d ids, want %d", len(got), tt.want)
			}
		})
	}
}
