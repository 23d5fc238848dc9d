package vanta

import "github.com/tidwall/gjson"

// page holds the records and pagination info extracted from one response
// envelope. pageInfo may be a non-existent result, which behaves as an empty
// mapping under path lookup.
type page struct {
	records  []gjson.Result
	pageInfo gjson.Result
}

// envelopeMatcher probes one known response shape. It reports false when the
// document does not take that shape.
type envelopeMatcher func(doc gjson.Result) (page, bool)

// envelopeMatchers are probed in priority order. A response could satisfy
// more than one predicate structurally, so the order is part of the contract.
var envelopeMatchers = []envelopeMatcher{
	matchResultsArray,
	matchResultsObject,
	matchPeopleArray,
}

// matchEnvelope resolves the first matching shape, if any.
func matchEnvelope(doc gjson.Result) (page, bool) {
	for _, match := range envelopeMatchers {
		if pg, ok := match(doc); ok {
			return pg, true
		}
	}
	return page{}, false
}

// matchResultsArray handles {"results": [...], "pageInfo": {...}} with
// resultsPageInfo as a fallback location for the page info.
func matchResultsArray(doc gjson.Result) (page, bool) {
	results := doc.Get("results")
	if !results.IsArray() {
		return page{}, false
	}

	info := doc.Get("pageInfo")
	if !info.Exists() {
		info = doc.Get("resultsPageInfo")
	}
	return page{records: results.Array(), pageInfo: info}, true
}

// matchResultsObject handles {"results": {"nodes": [...], "pageInfo": {...}}}
// where the record list may also appear under "results" or "data". The first
// present key wins.
func matchResultsObject(doc gjson.Result) (page, bool) {
	results := doc.Get("results")
	if !results.IsObject() {
		return page{}, false
	}

	var records []gjson.Result
	for _, key := range []string{"nodes", "results", "data"} {
		if nodes := results.Get(key); nodes.Exists() && nodes.Type != gjson.Null {
			records = nodes.Array()
			break
		}
	}
	return page{records: records, pageInfo: results.Get("pageInfo")}, true
}

// matchPeopleArray handles the legacy {"people": [...], "pageInfo": {...}}
// shape.
func matchPeopleArray(doc gjson.Result) (page, bool) {
	people := doc.Get("people")
	if !people.IsArray() {
		return page{}, false
	}
	return page{records: people.Array(), pageInfo: doc.Get("pageInfo")}, true
}

// nextCursor resolves the continuation cursor for the next page. Some
// deployments signal continuation with a top-level nextPageCursor instead of
// pageInfo. It reports false when iteration must stop, including when a
// continuation flag was set but no usable cursor is present.
func nextCursor(doc gjson.Result, pageInfo gjson.Result) (string, bool) {
	hasNext := pageInfo.Get("hasNextPage").Bool()
	cursor := pageInfo.Get("endCursor").String()

	if !hasNext {
		if next := doc.Get("nextPageCursor").String(); next != "" {
			hasNext = true
			cursor = next
		}
	}

	if !hasNext || cursor == "" {
		return "", false
	}
	return cursor, true
}
