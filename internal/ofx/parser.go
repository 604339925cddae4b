// Package ofx imports OFX/QFX statement exports. Some Indian banks
// offer OFX downloads alongside CSV; both feed the same import
// pipeline as normalized rows.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/statement"
)

// Parser converts OFX responses into normalized statement rows.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates an OFX parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess repairs formatting quirks seen in real bank exports:
// leading blank lines before the header, mixed-case SEVERITY values,
// and SGML-style tags missing their closing bracket.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagPattern.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX document and returns the normalized rows
// from every bank and credit-card statement it contains. Statements
// that fail to convert are logged and skipped.
func (p *Parser) Parse(r io.Reader) ([]model.ParsedTransaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ofx input: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("parsing ofx document: %w", err)
	}

	var rows []model.ParsedTransaction
	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, tx := range stmt.BankTranList.Transactions {
			rows = append(rows, p.convert(tx, string(stmt.BankAcctFrom.AcctID)))
		}
	}
	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, tx := range stmt.BankTranList.Transactions {
			rows = append(rows, p.convert(tx, string(stmt.CCAcctFrom.AcctID)))
		}
	}

	p.logger.Info("parsed ofx document", "transactions", len(rows))
	return rows, nil
}

// convert maps one OFX transaction onto the canonical row shape the
// import pipeline expects. OFX amounts are signed (debits negative),
// which drives the same type classification as CSV rows.
func (p *Parser) convert(tx ofxgo.Transaction, accountID string) model.ParsedTransaction {
	signed, _ := tx.TrnAmt.Float64()
	amount := signed
	if amount < 0 {
		amount = -amount
	}

	description := describeTransaction(tx)
	return model.ParsedTransaction{
		Date:        tx.DtPosted.Time,
		Description: description,
		Merchant:    merchantFor(tx, description),
		Source:      sourceFor(accountID),
		Type:        statement.ClassifyType(description, signed),
		Amount:      amount,
	}
}

// describeTransaction prefers NAME, falling back to MEMO when NAME is
// one of the generic placeholders banks emit.
func describeTransaction(tx ofxgo.Transaction) string {
	name := strings.TrimSpace(string(tx.Name))
	memo := strings.TrimSpace(string(tx.Memo))
	if memo != "" && isGenericName(name) {
		return memo
	}
	if name == "" {
		return memo
	}
	return name
}

// merchantFor prefers the structured PAYEE record when present, then
// runs the same merchant extraction used for CSV descriptions.
func merchantFor(tx ofxgo.Transaction, description string) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	return statement.ExtractMerchant(description)
}

func sourceFor(accountID string) string {
	if accountID == "" {
		return "ofx"
	}
	return "ofx:" + accountID
}

var genericNames = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"POS TRANSACTION": true,
	"UPI":             true,
}

func isGenericName(name string) bool {
	return name == "" || genericNames[strings.ToUpper(name)]
}
