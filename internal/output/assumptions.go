package output

// DefaultDisclaimers is printed when a calculator carries no disclaimers
// of its own.
var DefaultDisclaimers = []string{
	"Estimates are for planning only and are not financial, tax, or legal advice.",
}
