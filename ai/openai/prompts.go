package openai

// summaryPromptTemplate asks the planner model for a short file summary.
const summaryPromptTemplate = `Summarize the following repository file in at most 100 words.
Focus on what the file is for and what a reader would find in it.
Return only the summary text, with no preamble.

File path: %s

File content:
%s`
