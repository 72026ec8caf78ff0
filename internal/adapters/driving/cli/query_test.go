package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

func TestQueryCmd_Use(t *testing.T) {
	assert.Equal(t, "query [question]", queryCmd.Use)
}

func TestQueryCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestQueryCmd_HasTopKFlag(t *testing.T) {
	flag := queryCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)
}

func TestQueryCmd_PrintsAnswerAndSources(t *testing.T) {
	retrieval := &mockRetrievalService{
		queryResult: &domain.QueryResult{
			Answer: "The cat sat on the mat.",
			Results: []domain.SearchResult{
				{
					Content:  "The cat sat on the mat.",
					Metadata: map[string]any{"source": "cats.pdf", "primary_page": 1},
					Score:    0.95,
					Rank:     1,
				},
			},
		},
	}
	cleanup := setupTestServices(retrieval, nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "where did the cat sit?"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "where did the cat sit?", retrieval.lastQuestion)
	assert.Contains(t, buf.String(), "The cat sat on the mat.")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "cats.pdf, page 1")
}

func TestQueryCmd_TopKFlagPropagates(t *testing.T) {
	retrieval := &mockRetrievalService{
		queryResult: &domain.QueryResult{Answer: domain.AnswerNotFound},
	}
	cleanup := setupTestServices(retrieval, nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "-k", "3", "anything"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 3, retrieval.lastOpts.TopK)
}

func TestQueryCmd_JSONOutput(t *testing.T) {
	retrieval := &mockRetrievalService{
		queryResult: &domain.QueryResult{
			Results: []domain.SearchResult{
				{Content: "chunk text", Score: 0.5, Rank: 1},
			},
		},
	}
	cleanup := setupTestServices(retrieval, nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--json", "anything"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), `"content": "chunk text"`)
	assert.Contains(t, buf.String(), `"rank": 1`)
}
