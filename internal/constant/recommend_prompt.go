package constant

// ProfilePromptTemplate synthesizes a preference profile from the customer's
// stated requirements and their rated houses. Output is free text stored on
// the project and fed back into ranking prompts.
const ProfilePromptTemplate = `You are an assistant for a real-estate agency.
Based on the customer's stated requirements and their ratings of previously
offered properties, write a concise preference profile.

Customer requirements:
%s

Rated properties (rating, then an excerpt of the listing):
%s

Cover, where the data supports it:
- location preferences (areas, station access, commute patterns)
- price band tendency
- layout and size preferences
- amenity and feature preferences
- any other salient pattern

Write plain prose, no headings, no bullet list formatting.`

// RankingPromptTemplate asks the LLM to pick the next candidates from the
// unplaced pool. The model must answer with ids only; anything else is
// discarded by the caller.
const RankingPromptTemplate = `You are ranking property listings for a real-estate customer.

Customer requirements:
%s

Inferred preference profile:
%s

Candidate properties (id followed by an excerpt):
%s

Select up to %d property ids the customer is most likely to be interested in,
best match first. Respond with ONLY the ids, one per line. No explanations,
no numbering, no other text.`
