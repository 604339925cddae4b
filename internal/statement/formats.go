package statement

import "strings"

// Format describes how one bank's CSV export maps onto the canonical
// transaction fields. Candidate column names are tried in order through
// the resolution ladder in resolveColumn.
type Format struct {
	Detect             func(headers []string) bool
	Name               string
	DateColumns        []string
	DescriptionColumns []string
	AmountColumns      []string
	DebitColumns       []string
	CreditColumns      []string
	DrCrColumns        []string
	MerchantColumns    []string
}

// formats is the ordered list of known bank formats. Most constrained
// detection predicates come first; the generic fallback always matches
// and must stay last.
var formats = []Format{
	{
		Name: "sbi",
		// SBI exports carry a distinctive four-column signature; requiring
		// all of them avoids false positives against other debit/credit
		// style statements.
		Detect: func(headers []string) bool {
			return hasHeader(headers, "txn date") &&
				hasHeader(headers, "ref no./cheque no.") &&
				hasHeader(headers, "debit") &&
				hasHeader(headers, "credit")
		},
		DateColumns:        []string{"Txn Date", "Value Date"},
		DescriptionColumns: []string{"Description"},
		DebitColumns:       []string{"Debit"},
		CreditColumns:      []string{"Credit"},
	},
	{
		Name: "hdfc",
		Detect: func(headers []string) bool {
			return hasHeader(headers, "narration") &&
				(hasHeader(headers, "withdrawal amt.") || hasHeader(headers, "deposit amt."))
		},
		DateColumns:        []string{"Date", "Value Dt"},
		DescriptionColumns: []string{"Narration"},
		DebitColumns:       []string{"Withdrawal Amt."},
		CreditColumns:      []string{"Deposit Amt."},
	},
	{
		Name: "icici",
		Detect: func(headers []string) bool {
			return hasHeader(headers, "transaction remarks")
		},
		DateColumns:        []string{"Transaction Date", "Value Date"},
		DescriptionColumns: []string{"Transaction Remarks"},
		DebitColumns:       []string{"Withdrawal Amount (INR )", "Withdrawal Amount"},
		CreditColumns:      []string{"Deposit Amount (INR )", "Deposit Amount"},
	},
	{
		Name: "axis",
		Detect: func(headers []string) bool {
			return hasHeader(headers, "particulars") && hasHeader(headers, "tran date")
		},
		DateColumns:        []string{"Tran Date"},
		DescriptionColumns: []string{"Particulars"},
		DebitColumns:       []string{"Debit"},
		CreditColumns:      []string{"Credit"},
	},
	{
		Name: "kotak",
		Detect: func(headers []string) bool {
			return hasHeader(headers, "dr / cr") ||
				(hasHeader(headers, "chq / ref no.") && hasHeader(headers, "amount"))
		},
		DateColumns:        []string{"Transaction Date", "Value Date"},
		DescriptionColumns: []string{"Description"},
		AmountColumns:      []string{"Amount"},
		DrCrColumns:        []string{"Dr / Cr"},
	},
	{
		Name: "pnb",
		Detect: func(headers []string) bool {
			return hasHeader(headers, "instrument id")
		},
		DateColumns:        []string{"Date"},
		DescriptionColumns: []string{"Remarks", "Narration"},
		AmountColumns:      []string{"Amount"},
		DrCrColumns:        []string{"Type"},
	},
	{
		Name: "generic",
		Detect: func(_ []string) bool {
			return true
		},
		DateColumns:        []string{"Date", "Txn Date", "Transaction Date", "Value Date", "Tran Date"},
		DescriptionColumns: []string{"Description", "Narration", "Particulars", "Remarks", "Details", "Transaction Details"},
		AmountColumns:      []string{"Amount", "Transaction Amount", "Amount (INR)"},
		DebitColumns:       []string{"Debit", "Withdrawal", "Withdrawal Amt.", "Withdrawal Amount", "Dr Amount"},
		CreditColumns:      []string{"Credit", "Deposit", "Deposit Amt.", "Deposit Amount", "Cr Amount"},
		MerchantColumns:    []string{"Merchant", "Payee", "Beneficiary"},
	},
}

// DetectFormat returns the first format whose predicate matches the
// observed header row.
func DetectFormat(headers []string) Format {
	for _, f := range formats {
		if f.Detect(headers) {
			return f
		}
	}
	return formats[len(formats)-1]
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return true
		}
	}
	return false
}
