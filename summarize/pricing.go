package summarize

// Model tiers for summarization, cheapest to most capable.
const (
	ModelEconomy  = "gpt-4o-mini"
	ModelStandard = "gpt-4o"
	ModelPremium  = "gpt-4-turbo"
)

// pricePer1KTokens is the input price table per tier, in currency units.
var pricePer1KTokens = map[string]float64{
	ModelEconomy:  0.00015,
	ModelStandard: 0.0025,
	ModelPremium:  0.01,
}

// EstimateCost predicts the spend for summarizing text with the given
// model. Token count is approximated as one token per four characters;
// the actual cost comes back from the summarizer and is what gets
// recorded against the budget.
func EstimateCost(text, model string) float64 {
	price, ok := pricePer1KTokens[model]
	if !ok {
		price = pricePer1KTokens[ModelPremium]
	}

	tokens := float64(len(text)) / 4
	return tokens / 1000 * price
}
