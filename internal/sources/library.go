// Package sources holds the citation source registry and the matcher
// that projects observation source ids into display metadata.
package sources

import "github.com/magnusgp/fermatter/internal/model"

// Library is the built-in writing-reference registry. Ids are stable;
// the UI and the enrichment prompt both address sources by these ids.
var Library = []model.LibrarySource{
	{
		ID:      "S1",
		Title:   "The Elements of Style",
		URL:     "https://en.wikipedia.org/wiki/The_Elements_of_Style",
		Snippet: "Omit needless words. Vigorous writing is concise. A sentence should contain no unnecessary words, a paragraph no unnecessary sentences.",
	},
	{
		ID:      "S2",
		Title:   "On Writing Well - William Zinsser",
		URL:     "https://en.wikipedia.org/wiki/On_Writing_Well",
		Snippet: "Clutter is the disease of American writing. We are a society strangling in unnecessary words, circular constructions, pompous frills and meaningless jargon.",
	},
	{
		ID:      "S3",
		Title:   "APA Publication Manual (7th ed.)",
		URL:     "https://apastyle.apa.org/",
		Snippet: "Scholarly writing should be clear, concise, and free of bias. Every claim should be supported by evidence, properly cited.",
	},
	{
		ID:      "S4",
		Title:   "Chicago Manual of Style",
		URL:     "https://www.chicagomanualofstyle.org/",
		Snippet: "Good writing is good thinking made visible. Structure your arguments logically and support claims with credible sources.",
	},
	{
		ID:      "S5",
		Title:   "Nature: How to Write a Paper",
		URL:     "https://www.nature.com/nature/for-authors/formatting-guide",
		Snippet: "Scientific papers should present findings clearly. Avoid jargon where possible. State limitations explicitly.",
	},
	{
		ID:      "S6",
		Title:   "Plain Language Guidelines",
		URL:     "https://www.plainlanguage.gov/guidelines/",
		Snippet: "Use simple words and short sentences. Write for your reader, not yourself. Organize information logically.",
	},
	{
		ID:      "S7",
		Title:   "Critical Thinking - Stanford Encyclopedia",
		URL:     "https://plato.stanford.edu/entries/critical-thinking/",
		Snippet: "Critical thinking involves careful examination of claims and arguments. Identify assumptions, evaluate evidence, and consider alternative interpretations.",
	},
	{
		ID:      "S8",
		Title:   "Logical Fallacies - Purdue OWL",
		URL:     "https://owl.purdue.edu/owl/general_writing/academic_writing/logic_in_argumentative_writing/",
		Snippet: "Common fallacies include ad hominem attacks, straw man arguments, false dichotomies, and appeals to authority without evidence.",
	},
}

var libraryByID = func() map[string]model.LibrarySource {
	m := make(map[string]model.LibrarySource, len(Library))
	for _, s := range Library {
		m[s.ID] = s
	}
	return m
}()

// LibrarySource returns the built-in source with the given id.
func LibrarySourceByID(id string) (model.LibrarySource, bool) {
	s, ok := libraryByID[id]
	return s, ok
}

// styleSuggestions maps an observation type to the library sources
// most relevant to it, used to recommend follow-up reading.
var styleSuggestions = map[model.ObservationType][]string{
	model.TypeMissingEvidence: {"S3", "S7"},
	model.TypeUnclearClaim:    {"S1", "S6"},
	model.TypeLogicGap:        {"S8", "S7"},
	model.TypeStructure:       {"S2", "S4"},
	model.TypeTone:            {"S2", "S6"},
	model.TypePrecision:       {"S5", "S1"},
	model.TypeCitationNeeded:  {"S3", "S4"},
}

// Suggest returns the library ids relevant to an observation type,
// restricted to ids the caller actually declared in the request. The
// engine never cites a source the caller did not bring.
func Suggest(typ model.ObservationType, declared []string) []string {
	relevant := styleSuggestions[typ]
	if len(relevant) == 0 || len(declared) == 0 {
		return nil
	}

	declaredSet := make(map[string]bool, len(declared))
	for _, id := range declared {
		declaredSet[id] = true
	}

	var out []string
	for _, id := range relevant {
		if declaredSet[id] {
			out = append(out, id)
		}
	}
	return out
}
