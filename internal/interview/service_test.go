package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkwon-dev/interviewkit/internal/genclient"
)

// fakeGenerator scripts responses per call and records every request it saw.
type fakeGenerator struct {
	requests []genclient.Request
	respond  func(call int, req genclient.Request) ([]genclient.Item, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req genclient.Request) ([]genclient.Item, error) {
	call := len(f.requests)
	f.requests = append(f.requests, req)
	return f.respond(call, req)
}

func TestService_Generate_AllCategories(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return []genclient.Item{
				{Question: "q1", Intent: "i1"},
				{Question: "q2", Intent: "i2"},
				{Question: "q3", Intent: "i3"},
			}, nil
		},
	}
	svc := NewService(gen, nil)

	out, err := svc.Generate(context.Background(), GenerateRequest{
		CandidateName: "Kim",
		Level:         "senior",
		JDText:        "Backend engineer",
	})
	require.NoError(t, err)
	require.Len(t, gen.requests, 3)

	for _, cat := range Categories() {
		require.Len(t, out[cat], 3, "category %s", cat)
		for _, c := range out[cat] {
			assert.Equal(t, cat, c.Category)
			assert.NotEmpty(t, c.Question)
			assert.NotEmpty(t, c.Intent)
		}
	}
}

func TestService_Generate_EmptyCategoryStaysEmpty(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			if call == 1 {
				return nil, nil
			}
			return []genclient.Item{{Question: "q", Intent: "i"}}, nil
		},
	}
	svc := NewService(gen, nil)

	out, err := svc.Generate(context.Background(), GenerateRequest{JDText: "jd"})
	require.NoError(t, err)

	cats := Categories()
	assert.NotEmpty(t, out[cats[0]])
	assert.Empty(t, out[cats[1]])
	assert.NotEmpty(t, out[cats[2]])
}

func TestService_Generate_AbortsOnCredentialError(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return nil, genclient.ErrMissingAPIKey
		},
	}
	svc := NewService(gen, nil)

	out, err := svc.Generate(context.Background(), GenerateRequest{JDText: "jd"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, genclient.ErrMissingAPIKey)
	assert.Len(t, gen.requests, 1)
}

func TestService_Generate_PastedTextReachesPrompt(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return nil, nil
		},
	}
	svc := NewService(gen, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		JDText:    "pasted description",
		JDFetched: "fetched description",
	})
	require.NoError(t, err)
	for _, req := range gen.requests {
		assert.Contains(t, req.Instruction, "pasted description")
		assert.NotContains(t, req.Instruction, "fetched description")
	}
}

func TestService_Generate_ForwardsResume(t *testing.T) {
	resume := []byte("%PDF-1.4 fake")
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return nil, nil
		},
	}
	svc := NewService(gen, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		JDText:     "jd",
		Resume:     resume,
		ResumeMIME: "application/pdf",
	})
	require.NoError(t, err)
	for _, req := range gen.requests {
		assert.Equal(t, resume, req.Attachment)
		assert.Equal(t, "application/pdf", req.MIMEType)
	}
}

func TestService_RefreshCategory(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return []genclient.Item{{Question: "fresh", Intent: "i"}}, nil
		},
	}
	svc := NewService(gen, nil)

	out, err := svc.RefreshCategory(context.Background(), GenerateRequest{JDText: "jd"}, CategoryTogether)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, CategoryTogether, out[0].Category)
	require.Len(t, gen.requests, 1)
	assert.True(t, strings.Contains(gen.requests[0].Instruction, "collaboration"))
}

func TestService_RegenerateItem(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return []genclient.Item{{Question: "single", Intent: "i"}}, nil
		},
	}
	svc := NewService(gen, nil)

	c, err := svc.RegenerateItem(context.Background(), GenerateRequest{JDText: "jd", Count: 5}, CategoryTransform)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "single", c.Question)
	assert.Equal(t, CategoryTransform, c.Category)
	assert.Equal(t, 1, gen.requests[0].Count)
}

func TestService_RegenerateItem_NothingUsable(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return nil, nil
		},
	}
	svc := NewService(gen, nil)

	c, err := svc.RegenerateItem(context.Background(), GenerateRequest{JDText: "jd"}, CategoryTomorrow)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestService_RegenerateItem_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	gen := &fakeGenerator{
		respond: func(call int, req genclient.Request) ([]genclient.Item, error) {
			return nil, boom
		},
	}
	svc := NewService(gen, nil)

	c, err := svc.RegenerateItem(context.Background(), GenerateRequest{JDText: "jd"}, CategoryTomorrow)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, boom)
}
