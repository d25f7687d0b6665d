package blocks

import (
	"regexp"
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"golang.org/x/text/unicode/norm"
)

// Rule maps block titles to a record kind. A title matches when it
// matches Pattern (if set) or contains any of Contains.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Contains []string
	Kind     models.Kind
}

// Match reports whether a normalised title satisfies the rule.
func (r Rule) Match(title string) bool {
	if r.Pattern != nil && r.Pattern.MatchString(title) {
		return true
	}
	for _, s := range r.Contains {
		if strings.Contains(title, s) {
			return true
		}
	}
	return false
}

// Rules is tested in order; the first match wins. "taxa de atraso" must
// precede every rule that could match a broader rate title.
var Rules = []Rule{
	{Name: "issued invoices", Pattern: regexp.MustCompile(`boletos?\s*emit`), Kind: models.KindIssuedInvoices},
	{Name: "on-time payment", Contains: []string{"pagamento no vencimento", "taxa de pagamento"}, Kind: models.KindOnTimePaymentRate},
	{Name: "delinquency by band", Contains: []string{"taxa de atraso"}, Kind: models.KindDelinquencyByBand},
	{Name: "delinquency rate", Contains: []string{"inadimpl"}, Kind: models.KindDelinquencyRate},
	{Name: "average payment days", Contains: []string{"tempo médio", "medio"}, Kind: models.KindAveragePaymentDays},
	{Name: "average invoice value", Contains: []string{"valor médio"}, Kind: models.KindAverageInvoiceValue},
	{Name: "installments", Contains: []string{"parcel"}, Kind: models.KindInstallmentBreakdown},
}

// NormalizeTitle lower-cases, trims and NFC-composes a block title.
func NormalizeTitle(title string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(title)))
}

// Classify returns the kind of a block title, or false when no rule
// matches and the block should be skipped.
func Classify(title string) (models.Kind, bool) {
	t := NormalizeTitle(title)
	for _, r := range Rules {
		if r.Match(t) {
			return r.Kind, true
		}
	}
	return "", false
}
