package statement

import (
	"testing"
	"time"

	"github.com/sankalpa/khaata/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "day month year",
			input: "19 Oct 2015",
			want:  time.Date(2015, 10, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "two digit year this century",
			input: "15/01/23",
			want:  time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "two digit year last century",
			input: "15/01/97",
			want:  time.Date(1997, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day first wins when ambiguous",
			input: "05/03/2024",
			want:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month first when day position exceeds 12",
			input: "03/25/2024",
			want:  time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "year first as last resort",
			input: "2024-03-05",
			want:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "dotted separators",
			input: "15.01.2023",
			want:  time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "impossible day",
			input:   "32/13/2024",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain", input: "500.00", want: 500},
		{name: "rupee symbol", input: "₹1,234.56", want: 1234.56},
		{name: "rs marker", input: "Rs. 2,500", want: 2500},
		{name: "inr marker", input: "INR 100", want: 100},
		{name: "parenthesized is negative", input: "(750.25)", want: -750.25},
		{name: "dr suffix is negative", input: "500.00 Dr", want: -500},
		{name: "cr suffix is positive", input: "500.00 Cr", want: 500},
		{name: "debit marker", input: "DEBIT:500.00", want: -500},
		{name: "credit marker", input: "CREDIT:1,000", want: 1000},
		{name: "quoted thousands", input: `"12,345.00"`, want: 12345},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAmount(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "upi prefix with reference",
			description: "UPI-SWIGGY-1234567890-paytm",
			want:        "SWIGGY paytm",
		},
		{
			name:        "neft transfer strips reference run",
			description: "NEFT-HDFC0001234-ACME CORP PAYMENT",
			want:        "HDFC ACME CORP",
		},
		{
			name:        "pos purchase",
			description: "POS 416021XXXXXX1234 BIG BAZAAR MUMBAI",
			want:        "XXXXXX1234 BIG BAZAAR",
		},
		{
			name:        "only reference numbers",
			description: "UPI-9876543210-123456789012",
			want:        "",
		},
		{
			name:        "short tokens dropped",
			description: "TO A B SWIGGY",
			want:        "SWIGGY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMerchant(tt.description); got != tt.want {
				t.Errorf("ExtractMerchant(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      float64
		want        model.TransactionType
	}{
		{name: "broker purchase", description: "ZERODHA BROKING LTD", amount: -5000, want: model.TypeAsset},
		{name: "asset beats income", description: "mutual fund dividend reinvest sip instal", amount: -1000, want: model.TypeAsset},
		{name: "redemption is asset", description: "MF REDEMPTION PROCEEDS REDEMPTION", amount: 4000, want: model.TypeAsset},
		{name: "salary is income", description: "SALARY CREDIT OCT", amount: 85000, want: model.TypeIncome},
		{name: "farm revenue", description: "MANDI PAYMENT WHEAT", amount: 12000, want: model.TypeIncome},
		{name: "default positive is income", description: "MISC TRANSFER", amount: 100, want: model.TypeIncome},
		{name: "default negative is expense", description: "MISC TRANSFER", amount: -100, want: model.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyType(tt.description, tt.amount); got != tt.want {
				t.Errorf("ClassifyType(%q, %v) = %v, want %v", tt.description, tt.amount, got, tt.want)
			}
		})
	}
}
