package classify

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the categorization request sent to the LLM. The
// hint section is generated from QuickRules so the prompt vocabulary
// stays in lockstep with the quick-match table.
func BuildPrompt(description, merchant string, amount float64, available []string) string {
	var b strings.Builder

	b.WriteString("Categorize this Indian bank transaction into exactly one of the available categories.\n\n")
	fmt.Fprintf(&b, "Description: %s\n", description)
	if merchant != "" {
		fmt.Fprintf(&b, "Merchant: %s\n", merchant)
	}
	fmt.Fprintf(&b, "Amount: ₹%.2f\n\n", amount)

	b.WriteString("Available categories:\n")
	for _, name := range available {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	b.WriteString("\nCommon Indian merchant hints:\n")
	for _, rule := range QuickRules {
		fmt.Fprintf(&b, "- %s: %s\n", rule.Category, strings.Join(rule.Keywords, ", "))
	}

	b.WriteString("\nRespond with only a JSON object: ")
	b.WriteString(`{"category": "<one of the available categories>", "reasoning": "<one sentence>", "confidence": <0.0-1.0>}`)

	return b.String()
}
