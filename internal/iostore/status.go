package iostore

import (
	"fmt"

	"github.com/dorascope/dorascope/schema"
)

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Records: %d\n", status.TotalRecords)
	if status.TotalRecords == 0 {
		return
	}
	fmt.Printf("Repositories: %d\n", status.RepositoryCount)
	fmt.Printf("Newest Record: %s\n", status.NewestDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Oldest Record: %s\n", status.OldestDate.Format("2006-01-02 15:04:05"))
}
