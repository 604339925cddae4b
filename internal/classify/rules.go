package classify

import "strings"

// Rule maps a keyword set to a category name with a confidence. Rules
// fire on substring match against the lowercased description or
// merchant; the first matching rule in table order wins.
type Rule struct {
	Category   string
	Keywords   []string
	Confidence float64
}

// QuickRules is the static keyword-to-category table. It is consumed
// by both the quick-match step and the LLM prompt builder, so the two
// never drift apart. Order matters: sale/redemption rules sit above
// their purchase counterparts so "mutual fund redemption" doesn't fire
// the purchase rule first.
var QuickRules = []Rule{
	{Category: "Groceries & Food", Confidence: 0.95, Keywords: []string{
		"swiggy", "zomato", "bigbasket", "blinkit", "zepto", "instamart",
		"dmart", "more supermarket", "reliance fresh", "dominos", "kfc",
	}},
	{Category: "Utilities", Confidence: 0.9, Keywords: []string{
		"electricity", "bescom", "mseb", "tneb", "water bill",
		"gas cylinder", "indane", "bharat gas", "hp gas",
	}},
	{Category: "Mobile & Internet", Confidence: 0.9, Keywords: []string{
		"airtel", "jio", "vodafone", "vi recharge", "bsnl",
		"act fibernet", "hathway", "broadband", "mobile recharge",
	}},
	{Category: "Transport & Fuel", Confidence: 0.9, Keywords: []string{
		"uber", "ola cabs", "rapido", "irctc", "redbus", "petrol",
		"diesel", "hpcl", "iocl", "bharat petroleum", "fastag",
	}},
	{Category: "Entertainment", Confidence: 0.9, Keywords: []string{
		"netflix", "hotstar", "prime video", "spotify", "bookmyshow",
		"pvr", "inox",
	}},
	{Category: "Healthcare", Confidence: 0.85, Keywords: []string{
		"pharmacy", "apollo", "medplus", "hospital", "clinic",
		"1mg", "netmeds", "practo",
	}},
	{Category: "Education", Confidence: 0.85, Keywords: []string{
		"school fee", "tuition", "college fee", "udemy", "coursera",
	}},
	{Category: "Stock Sale", Confidence: 0.85, Keywords: []string{
		"stock sale", "shares sold", "sale of shares", "share sale",
	}},
	{Category: "Stock Purchase", Confidence: 0.85, Keywords: []string{
		"zerodha", "groww", "upstox", "angel broking", "icici direct",
		"demat", "stock purchase", "shares bought",
	}},
	{Category: "Mutual Fund Redemption", Confidence: 0.85, Keywords: []string{
		"redemption", "redeem", "units sold",
	}},
	{Category: "Mutual Fund Purchase", Confidence: 0.85, Keywords: []string{
		"mutual fund", "sip instal", "nav purchase", "folio",
	}},
	{Category: "PPF Contribution", Confidence: 0.9, Keywords: []string{
		"ppf",
	}},
	{Category: "NPS Contribution", Confidence: 0.9, Keywords: []string{
		"nps",
	}},
	{Category: "Gold Purchase", Confidence: 0.85, Keywords: []string{
		"sovereign gold", "gold bond", "mmtc", "digital gold",
	}},
	{Category: "Fixed Deposit", Confidence: 0.85, Keywords: []string{
		"fixed deposit", "fd booked", "fd renewal",
	}},
	{Category: "Farm Asset Purchase", Confidence: 0.8, Keywords: []string{
		"tractor", "irrigation", "farm equipment", "borewell",
	}},
	{Category: "Farm Income", Confidence: 0.8, Keywords: []string{
		"mandi", "crop sale", "produce sale", "kisan samman",
	}},
	{Category: "Farm Expenses", Confidence: 0.8, Keywords: []string{
		"fertilizer", "pesticide", "seeds", "cattle feed",
	}},
	{Category: "Salary", Confidence: 0.95, Keywords: []string{
		"salary", "payroll", "stipend",
	}},
	{Category: "Dividends", Confidence: 0.9, Keywords: []string{
		"dividend",
	}},
	{Category: "Capital Gains", Confidence: 0.85, Keywords: []string{
		"capital gain",
	}},
	{Category: "Interest Income", Confidence: 0.85, Keywords: []string{
		"interest credit", "interest paid", "int.pd",
	}},
	{Category: "Rent", Confidence: 0.85, Keywords: []string{
		"house rent", "rent paid", "rent transfer",
	}},
	{Category: "Banking Fees", Confidence: 0.8, Keywords: []string{
		"sms charges", "amc charges", "annual charges", "min bal",
		"penal charges", "chq return",
	}},
	{Category: "Miscellaneous Income", Confidence: 0.7, Keywords: []string{
		"cashback", "refund", "reversal",
	}},
}

// matchQuickRule returns the first rule whose keywords appear in the
// description or merchant and whose category resolves against the
// available names, with the keyword that fired and the resolved name.
// A matching rule whose category the caller did not offer is skipped
// and matching continues down the table.
func matchQuickRule(description, merchant string, available []string) (*Rule, string, string) {
	haystack := strings.ToLower(description) + " " + strings.ToLower(merchant)
	for i := range QuickRules {
		for _, kw := range QuickRules[i].Keywords {
			if !strings.Contains(haystack, kw) {
				continue
			}
			if name, ok := resolveCategoryName(QuickRules[i].Category, available); ok {
				return &QuickRules[i], kw, name
			}
			// Resolution depends only on the rule's category, so no
			// other keyword of this rule can do better.
			break
		}
	}
	return nil, "", ""
}

// resolveCategoryName reconciles a suggested category name against the
// caller's available names: exact case-insensitive match first, then
// substring in either direction. Among substring candidates the
// longest available name wins, so "Stock Purchase" never silently
// resolves to "Stock Sale".
func resolveCategoryName(suggested string, available []string) (string, bool) {
	for _, name := range available {
		if strings.EqualFold(name, suggested) {
			return name, true
		}
	}

	lower := strings.ToLower(suggested)
	best := ""
	for _, name := range available {
		ln := strings.ToLower(name)
		if strings.Contains(ln, lower) || strings.Contains(lower, ln) {
			if len(name) > len(best) {
				best = name
			}
		}
	}
	if best != "" {
		return best, true
	}
	return "", false
}
