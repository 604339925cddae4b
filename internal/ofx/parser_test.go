package ofx

import (
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankalpa/khaata/internal/model"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20230315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>INR
<BANKACCTFROM>
<BANKID>SBIN0001234
<ACCTID>00001234567890
<ACCTTYPE>SAVINGS
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20230101120000[0:GMT]
<DTEND>20230131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20230115120000[0:GMT]
<TRNAMT>-450.00
<FITID>2023011501
<NAME>UPI-SWIGGY-9988776655-paytm
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20230131120000[0:GMT]
<TRNAMT>55000.00
<FITID>2023013101
<NAME>NEFT SALARY ACME CORP
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20230120120000[0:GMT]
<TRNAMT>-10000.00
<FITID>2023012001
<NAME>ZERODHA BROKING LTD
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>44550.00
<DTASOF>20230131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20230315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>INR
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20230101120000[0:GMT]
<DTEND>20230131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20230110120000[0:GMT]
<TRNAMT>-649.00
<FITID>CC2023011001
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-649.00
<DTASOF>20230131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{"bank statement", sampleBankOFX, 3, false},
		{"credit card statement", sampleCreditCardOFX, 1, false},
		{"invalid input", "not an ofx document", 0, true},
		{"empty input", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := NewParser(nil).Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantCount)
		})
	}
}

func TestParseBankStatement(t *testing.T) {
	rows, err := NewParser(nil).Parse(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	swiggy := rows[0]
	assert.Equal(t, "UPI-SWIGGY-9988776655-paytm", swiggy.Description)
	assert.Equal(t, 450.00, swiggy.Amount)
	assert.Equal(t, model.TypeExpense, swiggy.Type)
	assert.Equal(t, "ofx:00001234567890", swiggy.Source)
	assert.Equal(t, 2023, swiggy.Date.Year())
	assert.Equal(t, time.January, swiggy.Date.Month())
	assert.Equal(t, 15, swiggy.Date.Day())
	assert.Equal(t, "SWIGGY paytm", swiggy.Merchant)

	salary := rows[1]
	assert.Equal(t, 55000.00, salary.Amount)
	assert.Equal(t, model.TypeIncome, salary.Type)

	zerodha := rows[2]
	assert.Equal(t, 10000.00, zerodha.Amount)
	assert.Equal(t, model.TypeAsset, zerodha.Type)
}

func TestDescribeTransaction(t *testing.T) {
	tests := []struct {
		name string
		memo string
		want string
	}{
		{"UPI-SWIGGY-123", "", "UPI-SWIGGY-123"},
		{"DEBIT", "BILLPAY AIRTEL POSTPAID", "BILLPAY AIRTEL POSTPAID"},
		{"", "IMPS TRANSFER RAMESH", "IMPS TRANSFER RAMESH"},
		{"NEFT ACME CORP", "ignored memo", "NEFT ACME CORP"},
	}

	for _, tt := range tests {
		tx := ofxgo.Transaction{
			Name: ofxgo.String(tt.name),
			Memo: ofxgo.String(tt.memo),
		}
		assert.Equal(t, tt.want, describeTransaction(tx))
	}
}

func TestMerchantPrefersPayee(t *testing.T) {
	tx := ofxgo.Transaction{
		Name:  ofxgo.String("UPI-SWIGGY-9988776655-paytm"),
		Payee: &ofxgo.Payee{Name: ofxgo.String("Swiggy")},
	}
	assert.Equal(t, "Swiggy", merchantFor(tx, "UPI-SWIGGY-9988776655-paytm"))
}

func TestPreprocessRepairs(t *testing.T) {
	in := "\n\nOFXHEADER:100\n<SEVERITY>Info</SEVERITY>\n<BANKMSGSRSV1\n"
	got := preprocess(in)
	assert.True(t, strings.HasPrefix(got, "OFXHEADER"))
	assert.Contains(t, got, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, got, "<BANKMSGSRSV1>")
}
