package dto

// ScanResult summarizes one scan run across the tracked watchlist.
type ScanResult struct {
	Message       string   `json:"message"`
	ScannedCount  int      `json:"scannedCount"`
	FailedSymbols []string `json:"failedSymbols"`
}
