package ai

// BuildImageDescriptionPrompt asks the model to describe a destination or
// service photo for the travel catalog.
func BuildImageDescriptionPrompt(hint string) string {
	prompt := `
You are a data extraction engine for a travel agency.

Your task:
- Describe the attached image for a travel catalog.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO extra text.

Required JSON schema:
{
  "title": "string (short, max 10 words)",
  "description": "string (2-3 sentences, catalog tone)",
  "tags": ["string"]
}
`
	if hint != "" {
		prompt += "\nContext hint from the operator:\n" + hint + "\n"
	}
	return prompt
}

// BuildContractExtractionPrompt asks the model to pull structured booking
// data out of raw supplier contract text.
func BuildContractExtractionPrompt(contractText string) string {
	return `
You are a data extraction engine for a travel agency.

Your task:
- Convert the contract text into STRICT JSON.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO extra text.

If a field is not present in the text, use an empty string, 0, or [].

Required JSON schema:
{
  "clientName": "string",
  "startDate": "YYYY-MM-DD or empty string",
  "endDate": "YYYY-MM-DD or empty string",
  "totalAmount": number,
  "currencyCode": "3-letter ISO code or empty string",
  "provinces": ["string"]
}

CONTRACT TEXT:
` + contractText
}
