package service

// NOT_FOUND_ANSWER is the exact fallback the ask pipeline returns, and
// the exact phrase the model is instructed to use when the context does
// not contain the answer.
const NOT_FOUND_ANSWER = "Not found in document."

// EXTRACT_PARSE_ERROR marks an extraction whose model output was not
// valid JSON.
const EXTRACT_PARSE_ERROR = "Failed to parse LLM JSON output"

const askSystemPrompt = `You are a logistics document assistant. You answer questions strictly based on the provided document context.

Rules:
- ONLY use information present in the provided context to answer.
- If the answer is not found in the context, respond exactly: "Not found in document."
- Do not speculate, infer, or use external knowledge.
- When quoting, reference the exact text from the context.
- Be concise and precise.`

const askUserPromptTemplate = `## Retrieved Context (most relevant sections)
%s

## Full Document Text
%s

## Question
%s`

const extractSystemPrompt = `You are a logistics document data extractor. Extract structured shipment information from the provided document text.

Return a JSON object with these fields (use null for any field not found):
- shipment_id: string
- shipper: string (company name)
- consignee: string (company name)
- pickup_datetime: string (ISO 8601 or as stated in document)
- delivery_datetime: string (ISO 8601 or as stated in document)
- equipment_type: string (e.g., "Dry Van", "Reefer", "Flatbed")
- mode: string (e.g., "FTL", "LTL")
- rate: number (numeric value only)
- currency: string (e.g., "USD")
- weight: string (include unit)
- carrier_name: string

Rules:
- ONLY extract information explicitly stated in the document.
- Use null for any field not found — do NOT guess.
- Return ONLY the JSON object, no extra text.`

const extractUserPromptTemplate = `## Document Text
%s

Extract the structured shipment information as JSON.`
