package vision

import "github.com/lithammer/dedent"

// identifyPrompt asks for a structured identification of the photographed
// item. Field names match the domain.ItemIdentification JSON contract.
var identifyPrompt = dedent.Dedent(`
	Analyze the provided photo(s) and identify the physical item for resale
	on eBay. All photos show the same item from different angles.

	Respond in JSON with exactly these fields:
	- itemName: concise marketplace-ready name including brand and model when visible
	- brand: brand name, or "" if unknown
	- model: model name or number, or null if unknown
	- category: broad resale category (e.g. "electronics", "shoes", "tools")
	- subcategory: narrower category (e.g. "headphones", "sneakers"), or null
	- confidence: your identification confidence as a number between 0 and 1
	- attributes: object of notable attribute name/value pairs (color, size, storage, ...)
	- specialAttributes: array of edition or collaboration tags (e.g. "limited edition"), [] if none

	Example:
	{"itemName": "Sony WH-1000XM5 Wireless Headphones", "brand": "Sony", "model": "WH-1000XM5", "category": "electronics", "subcategory": "headphones", "confidence": 0.9, "attributes": {"color": "black"}, "specialAttributes": []}

	Respond ONLY with the JSON object, no markdown or other text.`)
