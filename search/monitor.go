package search

import "github.com/seorim/newsgate/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterSemanticSearch(ids []string)
	AfterQueryKeywordExtraction(keywords []string)
	AfterKeywordMatch(ids []string)
	AfterDocumentRetrieval(docs []*core.Document)
	SemanticAndKeywordHit(doc *core.Document)
	SemanticHit(doc *core.Document)
	KeywordHit(doc *core.Document)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterSemanticSearch(_ []string)          {}
func (n *noopMonitor) AfterQueryKeywordExtraction(_ []string)  {}
func (n *noopMonitor) AfterKeywordMatch(_ []string)            {}
func (n *noopMonitor) AfterDocumentRetrieval(_ []*core.Document) {}
func (n *noopMonitor) SemanticAndKeywordHit(_ *core.Document)  {}
func (n *noopMonitor) SemanticHit(_ *core.Document)            {}
func (n *noopMonitor) KeywordHit(_ *core.Document)             {}
func (n *noopMonitor) Finish(_ []*Result)                      {}
