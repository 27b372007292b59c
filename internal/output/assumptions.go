package output

// DefaultAssumptions lists the modeling assumptions printed with detailed reports
var DefaultAssumptions = []string{
	"Interest compounds monthly at one twelfth of the annual rate",
	"Payments are level for the full term; no prepayments or rate changes",
	"Property tax and insurance are flat annual percentages of the cost price",
	"Break-even divides the cost price by the monthly expenses",
	"Future value compounds the appreciation rate annually from the cost price",
	"Resale return uses the configured markup (10% when unset)",
}
