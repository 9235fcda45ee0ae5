// Package mock provides test double implementations of the AI service
// interfaces.
//
// The mocks let pipeline tests run without network access and with
// controlled, deterministic behavior. Custom behavior is injected via
// function fields:
//
//	provider := mock.NewMockProvider().(*mock.MockProvider)
//	provider.MockKeywordExtractorInstance().ExtractKeywordsFunc =
//	    func(ctx context.Context, text string) ([]string, error) {
//	        return nil, errors.New("rate limited")
//	    }
//
// Default behavior:
//
//   - MockEmbedder: deterministic FNV-seeded unit vectors, so identical
//     text embeds identically across runs
//   - MockSummarizer: truncated echo of the input
//   - MockKeywordExtractor: first distinct words of the text
//   - MockBodyExtractor: refuses with ai.ErrNoBody
package mock
