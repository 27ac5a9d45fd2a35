package recommend

import (
	"context"
	"fmt"
	"strings"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/pkg/llm"

	"github.com/google/uuid"
)

// LLMStrategy ranks the unplaced pool with a language model. Semantically
// richer than vector similarity but slower and costlier, so it only runs for
// the quota the similarity layer could not fill.
type LLMStrategy struct {
	provider llm.LLMProvider
}

var _ Strategy = &LLMStrategy{}

func NewLLMStrategy(provider llm.LLMProvider) *LLMStrategy {
	return &LLMStrategy{provider: provider}
}

func (s *LLMStrategy) Name() string {
	return "llm"
}

func (s *LLMStrategy) Contribute(ctx context.Context, sc *SelectionContext) ([]*entity.House, error) {
	if s.provider == nil || !sc.HasRatings() {
		return nil, nil
	}

	var candidates strings.Builder
	for _, h := range sc.Unplaced {
		fmt.Fprintf(&candidates, "%s: %s\n\n", h.Id, excerpt(h.Content, constant.RankingExcerptLength))
	}

	prompt := fmt.Sprintf(constant.RankingPromptTemplate,
		sc.Project.Requirements,
		sc.Project.Profile,
		candidates.String(),
		sc.Need,
	)

	callCtx, cancel := context.WithTimeout(ctx, constant.RankingTimeout)
	defer cancel()

	answer, err := s.provider.Generate(callCtx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.House, len(sc.Unplaced))
	for _, h := range sc.Unplaced {
		byId[h.Id] = h
	}

	picked := make([]*entity.House, 0, sc.Need)
	for _, id := range parseIds(answer) {
		if h, ok := byId[id]; ok {
			picked = append(picked, h)
			delete(byId, id)
		}
		if len(picked) >= sc.Need {
			break
		}
	}
	return picked, nil
}

// parseIds pulls UUIDs out of a model answer. Models are asked for one id
// per line but routinely add numbering, commas or markdown fences, so every
// token is tried individually.
func parseIds(answer string) []uuid.UUID {
	var ids []uuid.UUID
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		switch r {
		case '\n', '\r', ',', ' ', '\t', '*', '`':
			return true
		}
		return false
	})
	for _, f := range fields {
		token := strings.Trim(f, ".-)(")
		id, err := uuid.Parse(token)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
