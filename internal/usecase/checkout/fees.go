package checkout

import (
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

// Gateway processing fees: mobile money and cards charge a percentage of
// the amount, bank transfers a flat MK fee.
type feeRule struct {
	percent decimal.Decimal
	flat    decimal.Decimal
}

var feeRules = map[transaction.Method]feeRule{
	transaction.MethodAirtelMoney:  {percent: decimal.NewFromFloat(1.5)},
	transaction.MethodTNMMpamba:    {percent: decimal.NewFromFloat(1.5)},
	transaction.MethodBankTransfer: {flat: decimal.NewFromInt(500)},
	transaction.MethodDebitCard:    {percent: decimal.NewFromFloat(2.5)},
}

var hundred = decimal.NewFromInt(100)

// Fee returns the processing fee for paying amount via method, rounded to
// 2 decimal places. Unknown methods carry no fee.
func Fee(amount float64, method transaction.Method) float64 {
	rule, ok := feeRules[method]
	if !ok {
		return 0
	}
	if !rule.percent.IsZero() {
		return decimal.NewFromFloat(amount).Mul(rule.percent).Div(hundred).Round(2).InexactFloat64()
	}
	return rule.flat.InexactFloat64()
}

// Total returns amount plus the processing fee.
func Total(amount float64, method transaction.Method) float64 {
	return decimal.NewFromFloat(amount).Add(decimal.NewFromFloat(Fee(amount, method))).Round(2).InexactFloat64()
}
