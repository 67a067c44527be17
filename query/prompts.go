package query

// systemPrompt is the behavioral contract sent as the first message of
// every answering call. It is data, not something the pipeline enforces.
const systemPrompt = `Instructions:
Answer the following User Query based solely on the provided Context.
If the answer is not in the Context, check if it is in the Chat History, and answer based on that.
If you still can't find an answer, say "That is out of my scope".
Use the provided Metadata to give sources of the Context used on the answer, if a source is available.`

// decomposePromptTemplate asks the planner model to split a query into its
// constituent questions. A single-question query comes back verbatim as a
// one-element list.
const decomposePromptTemplate = `Given the following User Query, check if there are multiple questions being asked.
If there are, return each question separately in a JSON array.
Otherwise return the JSON array with a single element which is the User Query verbatim.
The JSON object should have a key named "questions" and a value which is a JSON array of questions.
User Query:
%s`

// expandPromptTemplate asks the planner model to rephrase each question
// into two variants covering different viewpoints.
const expandPromptTemplate = `Given the following list of questions, transform each into a set of 2 questions.
Each question should focus on a different part of the original question, representing different points of view.
Return the transformed questions in a JSON array.
The JSON object should have a key named "questions" and a value which is a JSON array of questions.
Questions:
%s`

// finalPromptTemplate is the user turn carrying the literal query, the
// assembled context, and the source metadata.
const finalPromptTemplate = `User Query:
%s

Context:
%s

Metadata:
%s`
