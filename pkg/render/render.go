package render

import (
	"fmt"
	"io"

	"github.com/mcclellann/advanceLedger/pkg/models"
)

// Statement writes the fixed-width text form of a global statement.
// Column widths are fixed by the reporting contract; every monetary figure
// is rounded to two places here and only here.
func Statement(w io.Writer, statement models.GlobalStatement) error {
	if _, err := fmt.Fprintln(w, "Advances:"); err != nil {
		return err
	}
	fmt.Fprintln(w, "----------------------------------------------------------")
	fmt.Fprintf(w, "%10s%11s%17s%20s\n", "Identifier", "Date", "Initial Amt", "Current Balance")

	for _, adv := range statement.Advances {
		fmt.Fprintf(w, "%10d%11s%17s%20s\n",
			adv.Identifier,
			adv.CreatedAt,
			adv.InitialAmount.StringFixed(2),
			adv.PrincipalBalance.StringFixed(2),
		)
	}

	fmt.Fprintln(w, "\nSummary Statistics:")
	fmt.Fprintln(w, "----------------------------------------------------------")
	fmt.Fprintf(w, "Aggregate Advance Balance: %31s\n", statement.TotalPrincipalBalance.StringFixed(2))
	fmt.Fprintf(w, "Interest Payable Balance: %32s\n", statement.TotalInterestPayable.StringFixed(2))
	fmt.Fprintf(w, "Total Interest Paid: %37s\n", statement.TotalInterestPaid.StringFixed(2))
	_, err := fmt.Fprintf(w, "Balance Applicable to Future Advances: %19s\n", statement.FutureCredit.StringFixed(2))
	return err
}
