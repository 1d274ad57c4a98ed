package poem

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/valentino/internal/types"
)

// stubClient implements llm.Client with canned responses; generation tests
// never hit the live model.
type stubClient struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (c *stubClient) GenerateText(_ context.Context, system, prompt string) (string, error) {
	c.lastSystem = system
	c.lastPrompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *stubClient) ListModels(_ context.Context) ([]string, error) {
	return []string{"models/stub"}, nil
}

func (c *stubClient) Close() error { return nil }

func TestGenerate_Success(t *testing.T) {
	stub := &stubClient{response: `{"title":"For Sam","poem":"line one\nline two"}`}
	g := NewGenerator(stub)

	result, err := g.Generate(context.Background(), &types.PoemRequest{
		Nickname:     "Sam",
		Relationship: "Partner",
		Traits:       []string{"Funny"},
		Vibe:         "Sweet",
	})
	require.NoError(t, err)
	assert.Equal(t, "For Sam", result.Title)
	assert.Equal(t, "line one\nline two", result.Poem)

	// The prompts carried the clamped wizard fields upstream.
	assert.Contains(t, stub.lastPrompt, "Sam")
	assert.Contains(t, stub.lastPrompt, "Funny")
	assert.Contains(t, stub.lastSystem, "Sweet")
}

func TestGenerate_FencedResponse(t *testing.T) {
	stub := &stubClient{response: "```json\n{\"title\":\"T\",\"poem\":\"L1\\nL2\"}\n```"}
	g := NewGenerator(stub)

	result, err := g.Generate(context.Background(), &types.PoemRequest{Nickname: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, "L1\nL2", result.Poem)
}

func TestGenerate_GarbageFallsBack(t *testing.T) {
	stub := &stubClient{response: "I cannot help with that."}
	g := NewGenerator(stub)

	result, err := g.Generate(context.Background(), &types.PoemRequest{
		Nickname:     "Sam",
		Relationship: "Partner",
		Traits:       []string{"Funny"},
		Vibe:         "Sweet",
	})
	require.NoError(t, err, "decode failure must be absorbed, never surfaced")
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Title)
	assert.NotEmpty(t, result.Poem)
	assert.Contains(t, strings.ToLower(result.Poem), "sam")
}

func TestGenerate_FallbackIsDeterministic(t *testing.T) {
	stub := &stubClient{response: "no json here"}
	g := NewGenerator(stub)
	req := &types.PoemRequest{Nickname: "Sam", Vibe: "Funny", Traits: []string{"Chaotic"}}

	a, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		upstreamErr error
		check       func(t *testing.T, err error)
	}{
		{
			name:        "credential rejected",
			upstreamErr: errors.New("googleapi: Error 403: API key not valid"),
			check: func(t *testing.T, err error) {
				var configErr *ConfigError
				assert.True(t, errors.As(err, &configErr))
			},
		},
		{
			name:        "quota exhausted",
			upstreamErr: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED quota exceeded"),
			check: func(t *testing.T, err error) {
				var busy *UpstreamBusyError
				assert.True(t, errors.As(err, &busy))
			},
		},
		{
			name:        "anything else",
			upstreamErr: errors.New("connection reset by peer"),
			check: func(t *testing.T, err error) {
				var genErr *GenerationError
				assert.True(t, errors.As(err, &genErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&stubClient{err: tt.upstreamErr})
			result, err := g.Generate(context.Background(), &types.PoemRequest{Nickname: "Sam"})
			assert.Nil(t, result)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGenerate_NeverReturnsEmptyPoem(t *testing.T) {
	// Whatever the model mangles, a success result always carries a poem.
	responses := []string{
		`{"title":"T","poem":"p"}`,
		"```json\n{\"title\":\"T\",\"poem\":\"p\"}\n```",
		"total garbage",
		`{"title":"","poem":""}`,
	}

	for _, resp := range responses {
		g := NewGenerator(&stubClient{response: resp})
		result, err := g.Generate(context.Background(), &types.PoemRequest{Nickname: "Sam"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Poem, "response %q produced an empty poem", resp)
	}
}
