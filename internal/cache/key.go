package cache

import (
	"slices"
	"strconv"
	"strings"
)

const calculationPrefix = "loan:calc:"

// CalculationKey builds the key for a pricing request. Bank ids are sorted
// so the same lender set maps to one entry.
func CalculationKey(apiLoanType string, amount float64, months int, bankIDs []int64) string {
	ids := slices.Clone(bankIDs)
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	var b strings.Builder
	b.WriteString(calculationPrefix)
	b.WriteString(apiLoanType)
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(amount, 'f', -1, 64))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(months))
	b.WriteByte(':')
	b.WriteString(strings.Join(parts, ","))
	return b.String()
}
