package rules

import (
	"github.com/shopspring/decimal"
)

// Report section field keys.
const (
	FieldRevTotal = "revTotal"
	FieldRevInc   = "revInc"
	FieldRevEx    = "revEx"
	FieldBuyTotal = "buyTotal"
)

// PurchaseFields are the purchase amounts summed into buyTotal.
var PurchaseFields = []string{"buyBillElec", "buyBillPaper", "buyBillBuyer", "buyTaxElec", "buyTaxPaper", "buyTaxBuyer", "buyCardCash"}

// Review matrix layout: rows 24..26 are entered, row 23 reconciles them and
// column 16 totals columns 17..22.
var (
	ReviewInputRows      = []string{"24", "25", "26"}
	ReviewRevenueCols    = []string{"17", "18", "19", "20", "21", "22"}
	ReviewTotalCol       = "16"
	ReviewBalanceRow     = "23"
	reviewReceivedRow    = "24"
	reviewPreviousRow    = "25"
	reviewOutstandingRow = "26"
)

// ReviewKey returns the matrix cell key for a row and column.
func ReviewKey(row, col string) string {
	return row + "_" + col
}

// Materials collection of the dental appendix.
const (
	CollectionMaterials = "materials"
	MaterialInit        = "init"
	MaterialBuy         = "buy"
	MaterialUsed        = "used_amt"
	MaterialNext        = "next"
)

func reportRules() []Rule {
	return []Rule{
		Sum("revenue_total", FieldRevTotal, FieldRevInc, FieldRevEx),
		Sum("purchase_total", FieldBuyTotal, PurchaseFields...),
	}
}

// reviewRules declares row totals first, then the row-23 balance of every
// column. The balance of column 16 reads the row totals.
func reviewRules() []Rule {
	var out []Rule
	for _, row := range ReviewInputRows {
		inputs := make([]string, len(ReviewRevenueCols))
		for i, col := range ReviewRevenueCols {
			inputs[i] = ReviewKey(row, col)
		}
		out = append(out, Sum("row_total_"+row, ReviewKey(row, ReviewTotalCol), inputs...))
	}
	for _, col := range append([]string{ReviewTotalCol}, ReviewRevenueCols...) {
		out = append(out, Balance("column_balance_"+col,
			ReviewKey(ReviewBalanceRow, col),
			ReviewKey(reviewReceivedRow, col),
			ReviewKey(reviewPreviousRow, col),
			ReviewKey(reviewOutstandingRow, col)))
	}
	return out
}

func reviewSubListRules() []ListRule {
	return []ListRule{{
		Name:       "material_carry_forward",
		Collection: CollectionMaterials,
		Inputs:     []string{MaterialInit, MaterialBuy, MaterialUsed},
		Output:     MaterialNext,
		Compute: func(item func(string) decimal.Decimal) decimal.Decimal {
			return item(MaterialInit).Add(item(MaterialBuy)).Sub(item(MaterialUsed))
		},
	}}
}
